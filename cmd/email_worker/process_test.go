package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achrafato/MarkDown-App/pkg/helpers"
	"github.com/achrafato/MarkDown-App/pkg/mailer"
	mailtpl "github.com/achrafato/MarkDown-App/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	msgs []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, sent{to, subject, text, html})
	return nil
}

type fakeDelivery struct {
	acked, requeued, dropped bool
}

func (d *fakeDelivery) Ack(bool) error { d.acked = true; return nil }
func (d *fakeDelivery) Nack(_ bool, requeue bool) error {
	if requeue {
		d.requeued = true
	} else {
		d.dropped = true
	}
	return nil
}

func newProcessor(s mailer.Sender) *processor {
	return &processor{sender: s, logger: helpers.NewNopLogger(), timeout: time.Second}
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandleTemplateJob(t *testing.T) {
	s := &fakeSender{}
	p := newProcessor(s)
	job := mailer.EmailJob{
		To:       "ada@example.com",
		Template: mailtpl.Welcome,
		Data:     map[string]any{"Name": "Ada", "AppName": "Blog", "AppURL": "https://blog.test"},
	}

	assert.Equal(t, ack, p.handle(context.Background(), body(t, job), false))
	require.Len(t, s.msgs, 1)
	assert.Equal(t, "ada@example.com", s.msgs[0].to)
	assert.NotEmpty(t, s.msgs[0].subject)
	assert.Contains(t, s.msgs[0].text, "Ada")
	assert.NotEmpty(t, s.msgs[0].html)
}

func TestHandleLiteralJob(t *testing.T) {
	s := &fakeSender{}
	p := newProcessor(s)
	job := mailer.EmailJob{To: "a@example.com", Subject: "Hi", Text: "plain"}

	assert.Equal(t, ack, p.handle(context.Background(), body(t, job), false))
	require.Len(t, s.msgs, 1)
	assert.Equal(t, sent{"a@example.com", "Hi", "plain", ""}, s.msgs[0])
}

func TestHandleRejectsUndeliverable(t *testing.T) {
	p := newProcessor(&fakeSender{})
	cases := map[string][]byte{
		"not json":         []byte("{"),
		"no recipient":     body(t, mailer.EmailJob{Template: mailtpl.Welcome}),
		"no body":          body(t, mailer.EmailJob{To: "a@example.com"}),
		"unknown template": body(t, mailer.EmailJob{To: "a@example.com", Template: "verify_email"}),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, drop, p.handle(context.Background(), b, false))
		})
	}
}

func TestHandleSendFailure(t *testing.T) {
	p := newProcessor(&fakeSender{err: errors.New("mailgun 503")})
	b := body(t, mailer.EmailJob{To: "a@example.com", Subject: "Hi", Text: "x"})

	assert.Equal(t, retry, p.handle(context.Background(), b, false))
	assert.Equal(t, drop, p.handle(context.Background(), b, true))
}

func TestSettle(t *testing.T) {
	for o, check := range map[outcome]func(*fakeDelivery) bool{
		ack:   func(d *fakeDelivery) bool { return d.acked },
		retry: func(d *fakeDelivery) bool { return d.requeued },
		drop:  func(d *fakeDelivery) bool { return d.dropped },
	} {
		d := &fakeDelivery{}
		require.NoError(t, settle(d, o))
		assert.True(t, check(d))
	}
}
