package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	coremqtt "github.com/kilianp07/cropplan/core/mqtt"
	"github.com/kilianp07/cropplan/core/planner"
	"github.com/kilianp07/cropplan/infra/logger"
)

// PlanMessage is the retained payload a greenhouse controller receives for
// its location.
type PlanMessage struct {
	RunID     string           `json:"run_id"`
	Year      int              `json:"year"`
	Location  string           `json:"location"`
	Actions   []planner.Action `json:"actions"`
	TotalCost float64          `json:"total_cost"`
	Timestamp int64            `json:"timestamp"`
}

// PlanPublisher splits a plan per location and publishes each part as a
// retained message on <prefix>/plan/<location>.
type PlanPublisher struct {
	pub    coremqtt.Publisher
	prefix string
	log    logger.Logger
}

// NewPlanPublisher wraps pub. An empty prefix defaults to "cropplan".
func NewPlanPublisher(pub coremqtt.Publisher, prefix string) *PlanPublisher {
	if prefix == "" {
		prefix = "cropplan"
	}
	return &PlanPublisher{pub: pub, prefix: strings.TrimSuffix(prefix, "/"), log: logger.New("plan_publisher")}
}

// Topic returns the topic used for location.
func (p *PlanPublisher) Topic(location string) string {
	return fmt.Sprintf("%s/plan/%s", p.prefix, topicSafe(location))
}

// Publish sends one message per location present in the plan, in location
// order. It stops at the first failure.
func (p *PlanPublisher) Publish(runID string, year int, plan planner.Plan) error {
	var msgs []PlanMessage
	for _, a := range plan.ByLocation() {
		if len(msgs) == 0 || msgs[len(msgs)-1].Location != a.Location {
			msgs = append(msgs, PlanMessage{RunID: runID, Year: year, Location: a.Location})
		}
		m := &msgs[len(msgs)-1]
		m.Actions = append(m.Actions, a)
		m.TotalCost += a.Cost
	}
	now := time.Now().UnixMilli()
	for _, m := range msgs {
		m.Timestamp = now
		payload, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if err := p.pub.Publish(p.Topic(m.Location), payload, true); err != nil {
			return err
		}
		p.log.Infof("published %d actions for %s", len(m.Actions), m.Location)
	}
	return nil
}

func topicSafe(s string) string {
	return strings.NewReplacer("/", "_", "+", "_", "#", "_", " ", "_").Replace(s)
}

// MockPublisher records published messages in memory instead of sending them
// to a broker.
type MockPublisher struct {
	Messages map[string][]byte
	Retained map[string]bool
	FailOn   map[string]bool
	mu       sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages: make(map[string][]byte),
		Retained: make(map[string]bool),
		FailOn:   make(map[string]bool),
	}
}

// Publish stores the payload or fails for topics listed in FailOn.
func (m *MockPublisher) Publish(topic string, payload []byte, retained bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailOn[topic] {
		return fmt.Errorf("%w: %s", coremqtt.ErrPublish, topic)
	}
	m.Messages[topic] = payload
	m.Retained[topic] = retained
	return nil
}

// Disconnect is a no-op.
func (m *MockPublisher) Disconnect() {}
