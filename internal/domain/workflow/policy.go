package workflow

import (
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Backoff names how the delay grows between attempts.
type Backoff string

const (
	BackoffConstant    Backoff = "constant"
	BackoffLinear      Backoff = "linear"
	BackoffExponential Backoff = "exponential"
)

// Policy controls how a step is retried.
type Policy struct {
	Retries   int           `yaml:"retries"`
	BaseDelay time.Duration `yaml:"baseDelay"`
	Backoff   Backoff       `yaml:"backoff"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Validate reports configuration mistakes.
func (p Policy) Validate() error {
	if p.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", p.Retries)
	}
	if p.BaseDelay <= 0 {
		return fmt.Errorf("base delay must be positive, got %s", p.BaseDelay)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", p.Timeout)
	}
	switch p.Backoff {
	case BackoffConstant, BackoffLinear, BackoffExponential, "":
		return nil
	default:
		return fmt.Errorf("unknown backoff %q", p.Backoff)
	}
}

// backoff returns a fresh schedule for one step execution.
func (p Policy) backoff() retry.Backoff {
	var b retry.Backoff
	switch p.Backoff {
	case BackoffConstant:
		b = retry.NewConstant(p.BaseDelay)
	case BackoffLinear:
		var attempt int64
		b = retry.BackoffFunc(func() (time.Duration, bool) {
			attempt++
			return time.Duration(attempt) * p.BaseDelay, false
		})
	default:
		b = retry.NewExponential(p.BaseDelay)
	}
	return retry.WithMaxRetries(uint64(p.Retries), b)
}

// CallModelPolicy is the default policy for the model step.
func CallModelPolicy() Policy {
	return Policy{Retries: 5, BaseDelay: 5 * time.Second, Backoff: BackoffExponential, Timeout: 15 * time.Minute}
}

// SendSMSPolicy is the default policy for the outbound SMS step.
func SendSMSPolicy() Policy {
	return Policy{Retries: 5, BaseDelay: 2 * time.Second, Backoff: BackoffExponential, Timeout: 15 * time.Minute}
}
