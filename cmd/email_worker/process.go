package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/achrafato/MarkDown-App/pkg/helpers"
	"github.com/achrafato/MarkDown-App/pkg/mailer"
	mailtpl "github.com/achrafato/MarkDown-App/pkg/mailer/templates"
)

type outcome int

const (
	ack outcome = iota
	// drop rejects a message that can never succeed
	drop
	// retry puts the message back on the queue
	retry
)

// acknowledger is the subset of amqp.Delivery the worker settles messages with.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type processor struct {
	sender  mailer.Sender
	logger  logrus.FieldLogger
	timeout time.Duration
}

// handle decodes, renders and sends one job. A failed send is retried once;
// a redelivered message that fails again is dropped.
func (p *processor) handle(ctx context.Context, body []byte, redelivered bool) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.logger.WithError(err).Warn("bad message")
		return drop
	}
	if err := job.Validate(); err != nil {
		p.logger.WithError(err).WithField("template", job.Template).Warn("invalid email job")
		return drop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			p.logger.WithError(err).WithField("template", job.Template).Error("render failed")
			return drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.sender.Send(c, job.To, subject, text, html); err != nil {
		entry := p.logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template})
		if redelivered {
			entry.Error("send failed again; dropping")
			return drop
		}
		entry.Warn("send failed; requeueing")
		return retry
	}
	return ack
}

func settle(d acknowledger, o outcome) error {
	switch o {
	case ack:
		return d.Ack(false)
	case retry:
		return d.Nack(false, true)
	default:
		return d.Nack(false, false)
	}
}
