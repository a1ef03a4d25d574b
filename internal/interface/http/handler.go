package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/sms-relay/internal/domain/workflow"
	apperrors "github.com/yanqian/sms-relay/pkg/errors"
	"github.com/yanqian/sms-relay/pkg/util"
)

// emptyTwiML acknowledges the webhook without sending a synchronous reply;
// the answer goes out later as its own message.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response/>`

// smsForm is the subset of the messaging webhook form the relay reads.
type smsForm struct {
	From string `form:"From" binding:"required,usphone"`
	To   string `form:"To" binding:"required,usphone"`
	Body string `form:"Body"`
}

// SMSHandler accepts inbound messages and starts a workflow for each.
type SMSHandler struct {
	queue  workflow.Queue
	logger *slog.Logger
	now    func() time.Time
}

// NewSMSHandler constructs the webhook handler.
func NewSMSHandler(queue workflow.Queue, logger *slog.Logger) *SMSHandler {
	return &SMSHandler{
		queue:  queue,
		logger: logger.With("component", "http.sms_handler"),
		now:    util.NowUTC,
	}
}

// ReceiveSMS handles the inbound message webhook.
func (h *SMSHandler) ReceiveSMS(c *gin.Context) {
	var form smsForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("inbound sms rejected", "error", err)
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", validationMessage(err), err))
		return
	}

	inst := workflow.NewInstance(workflow.InboundMessage{From: form.From, To: form.To, Body: form.Body}, h.now())
	if err := h.queue.Enqueue(c.Request.Context(), inst); err != nil {
		abortWithError(c, apperrors.Wrap(apperrors.CodeQueue, "could not schedule reply", err))
		return
	}
	h.logger.Info("created workflow "+inst.ID, "instance", inst.ID, "from", form.From)

	c.Data(http.StatusOK, "text/xml", []byte(emptyTwiML))
}

// Health reports liveness.
func (h *SMSHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
