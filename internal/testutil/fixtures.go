package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Client options
type ClientOption func(*domain.Client)

func WithContact(name, email string) ClientOption {
	return func(c *domain.Client) {
		c.ContactName = name
		c.Email = email
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(clientID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Job options
type JobOption func(*domain.Job)

func WithQuantity(q int) JobOption {
	return func(j *domain.Job) {
		j.Quantity = q
	}
}

func WithDrawingNumber(n string) JobOption {
	return func(j *domain.Job) {
		j.DrawingNumber = n
	}
}

func WithJobDate(col domain.DateColumn, d time.Time) JobOption {
	return func(j *domain.Job) {
		j.SetDateFor(col, &d)
	}
}

func WithNotes(n string) JobOption {
	return func(j *domain.Job) {
		j.Notes = n
	}
}

func NewTestJob(projectID, name string, stageID int64, opts ...JobOption) *domain.Job {
	now := time.Now().UTC()
	j := &domain.Job{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Quantity:  1,
		StageID:   stageID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Stage options
type StageOption func(*domain.Stage)

func AsDefault() StageOption {
	return func(s *domain.Stage) {
		s.IsDefault = true
	}
}

func AsFinal() StageOption {
	return func(s *domain.Stage) {
		s.IsFinal = true
	}
}

func WithDisplayName(n string) StageOption {
	return func(s *domain.Stage) {
		s.DisplayName = n
	}
}

func WithTargetColumns(cols ...domain.TargetColumn) StageOption {
	return func(s *domain.Stage) {
		s.TargetColumns = cols
	}
}

func NewTestStage(name string, orderIndex int, opts ...StageOption) *domain.Stage {
	s := &domain.Stage{
		Name:       name,
		OrderIndex: orderIndex,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lead-time rule options
type RuleOption func(*domain.LeadTimeRule)

func WithDirection(d domain.Direction) RuleOption {
	return func(r *domain.LeadTimeRule) {
		r.Direction = d
	}
}

func Inactive() RuleOption {
	return func(r *domain.LeadTimeRule) {
		r.IsActive = false
	}
}

func NewTestRule(fromStageID, toStageID int64, days int, opts ...RuleOption) *domain.LeadTimeRule {
	r := &domain.LeadTimeRule{
		FromStageID: fromStageID,
		ToStageID:   toStageID,
		Days:        days,
		Direction:   domain.DirectionBefore,
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestHoliday(date time.Time, name string) *domain.Holiday {
	return &domain.Holiday{
		Date:     date,
		Name:     name,
		IsPublic: true,
	}
}
