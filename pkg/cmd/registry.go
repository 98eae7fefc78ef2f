package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dukex/crmflow/pkg/actions/createtask"
	"github.com/dukex/crmflow/pkg/actions/sendemail"
	"github.com/dukex/crmflow/pkg/actions/sendnotification"
	"github.com/dukex/crmflow/pkg/actions/updatefield"
	"github.com/dukex/crmflow/pkg/actions/webhook"
	"github.com/dukex/crmflow/pkg/email"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/protocol"
	"github.com/dukex/crmflow/pkg/registry"
	"go.opentelemetry.io/otel/trace"
)

var ErrMissingCollaborator = errors.New("missing collaborator")

// Collaborators are the external dependencies of the action handlers.
type Collaborators struct {
	Store      persistence.Store
	Email      email.Transport
	HTTPClient *http.Client
}

// NewRegistry registers the native action handlers and checks that every
// action type is covered.
func NewRegistry(logger *slog.Logger, tracer trace.Tracer, deps Collaborators) (*registry.Registry, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	reg := registry.NewRegistry(logger, tracer)

	handlers := []protocol.ActionHandler{
		createtask.NewHandler(deps.Store, logger),
		sendemail.NewHandler(deps.Email, logger),
		sendnotification.NewHandler(deps.Store, logger),
		updatefield.NewHandler(deps.Store, logger),
		webhook.NewHandler(deps.HTTPClient, logger),
	}

	for _, handler := range handlers {
		if err := reg.Register(handler); err != nil {
			return nil, err
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}

	return reg, nil
}

func (c Collaborators) validate() error {
	switch {
	case c.Store == nil:
		return fmt.Errorf("%w: store", ErrMissingCollaborator)
	case c.Email == nil:
		return fmt.Errorf("%w: email transport", ErrMissingCollaborator)
	case c.HTTPClient == nil:
		return fmt.Errorf("%w: http client", ErrMissingCollaborator)
	default:
		return nil
	}
}
