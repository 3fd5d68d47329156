package interfaces

// ListRiskOption is a functional option for filtering risks in List
type ListRiskOption func(*listRiskConfig)

type listRiskConfig struct {
	projectID *int64
}

// WithProjectID filters risks by project
func WithProjectID(projectID int64) ListRiskOption {
	return func(c *listRiskConfig) {
		c.projectID = &projectID
	}
}

// BuildListRiskConfig builds a listRiskConfig from options
func BuildListRiskConfig(opts ...ListRiskOption) *listRiskConfig {
	cfg := &listRiskConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ProjectID returns the project filter value, or nil if not set
func (c *listRiskConfig) ProjectID() *int64 {
	return c.projectID
}
