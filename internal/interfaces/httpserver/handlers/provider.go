package handlers

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Session   *SessionHandler
	Grievance *GrievanceHandler
	View      *ViewHandler
}

// NewProvider constructs the handler provider.
func NewProvider(session *SessionHandler, grievanceHandler *GrievanceHandler, view *ViewHandler) *Provider {
	return &Provider{
		Session:   session,
		Grievance: grievanceHandler,
		View:      view,
	}
}
