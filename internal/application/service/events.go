package service

import "context"

// ContentEvent describes one admin mutation to displayed content.
type ContentEvent struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       string `json:"id"`
}

// EventPublisher emits content-change events. Publishing is best
// effort; a failed emit never fails the originating write.
type EventPublisher interface {
	PublishContentChanged(ctx context.Context, ev ContentEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishContentChanged(ctx context.Context, ev ContentEvent) error {
	return nil
}

// NewNoopPublisher returns a publisher that drops every event, for
// setups without a broker.
func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}
