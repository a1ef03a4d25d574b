package forecast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Coordinate is a latitude or longitude as the model sends it: either decimal
// degrees or a degrees/minutes/seconds triple with minutes and seconds optional.
type Coordinate []float64

// Decimal converts the coordinate to signed decimal degrees. The sign comes from
// the degrees component only.
func (c Coordinate) Decimal() float64 {
	if len(c) == 0 {
		return 0
	}
	d := c[0]
	var m, s float64
	if len(c) > 1 {
		m = c[1]
	}
	if len(c) > 2 {
		s = c[2]
	}
	return sign(d) * (math.Abs(d) + math.Abs(m)/60 + math.Abs(s)/3600)
}

// UnmarshalJSON accepts a bare number or an array of one to three numbers.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.New("coordinate is required")
	}
	if trimmed[0] != '[' {
		var single float64
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("coordinate must be a number or an array of numbers: %w", err)
		}
		*c = Coordinate{single}
		return nil
	}
	var parts []float64
	if err := json.Unmarshal(trimmed, &parts); err != nil {
		return fmt.Errorf("coordinate must be a number or an array of numbers: %w", err)
	}
	parsed := Coordinate(parts)
	if err := parsed.validate(); err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Coordinate) validate() error {
	switch {
	case len(c) == 0:
		return errors.New("coordinate array must contain at least 1 element")
	case len(c) > 3:
		return fmt.Errorf("coordinate array must contain at most 3 elements, got %d", len(c))
	case len(c) > 1 && c[0] != math.Trunc(c[0]):
		return fmt.Errorf("degrees must be an integer when minutes are given, got %v", c[0])
	}
	return nil
}

// sign keeps zero at zero, so [0, 30] resolves to 0 rather than 0.5.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
