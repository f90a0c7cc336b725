package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/models"
)

// Subjects carrying loan events. Payloads are the loan serialized as JSON.
const (
	SubjectLoanApplied  = "loan.applied"
	SubjectLoanApproved = "loan.approved"
)

var _ Publisher = (*NATS)(nil)

// NATS publishes loan events to a NATS broker.
type NATS struct {
	conn *nats.Conn
	log  *zap.Logger
}

// NewNATS connects to the broker at url.
func NewNATS(url string, log *zap.Logger) (*NATS, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATS{conn: conn, log: log}, nil
}

// Close drains the connection.
func (n *NATS) Close() {
	n.conn.Close()
}

func (n *NATS) LoanApplied(_ context.Context, loan models.Loan) {
	n.publish(SubjectLoanApplied, loan)
}

func (n *NATS) LoanApproved(_ context.Context, loan models.Loan) {
	n.publish(SubjectLoanApproved, loan)
}

func (n *NATS) publish(subject string, loan models.Loan) {
	payload, err := json.Marshal(loan)
	if err != nil {
		n.log.Error("encode loan event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := n.conn.Publish(subject, payload); err != nil {
		n.log.Warn("publish loan event", zap.String("subject", subject), zap.Error(err))
	}
}
