package onboarding

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BrianJOC/agri-console/api"
	"github.com/BrianJOC/agri-console/wizard"
)

// RegisterRequest converts the accumulated form into the registration payload.
// confirmPassword only exists to catch typos and is not sent.
func RegisterRequest(form *wizard.FormState) api.RegisterRequest {
	return api.RegisterRequest{
		Name:     strings.TrimSpace(form.String(FieldName)),
		Email:    strings.TrimSpace(form.String(FieldEmail)),
		Password: form.String(FieldPassword),
		Role:     form.String(FieldRole),
		Location: api.Location{
			Country: strings.TrimSpace(form.String(FieldCountry)),
			Region:  strings.TrimSpace(form.String(FieldRegion)),
		},
		PhoneNumber: strings.TrimSpace(form.String(FieldPhoneNumber)),
	}
}

// Registrar submits the onboarding form through an API client.
type Registrar struct {
	client *api.Client
}

// NewRegistrar wraps client as a wizard.Registrar.
func NewRegistrar(client *api.Client) *Registrar {
	return &Registrar{client: client}
}

// Register implements wizard.Registrar.
func (r *Registrar) Register(ctx context.Context, form *wizard.FormState) (wizard.Result, error) {
	if r == nil || r.client == nil {
		return wizard.Result{}, wizard.ConfigurationError{Reason: "registrar has no api client"}
	}
	req := RegisterRequest(form)
	resp, err := r.client.Register(ctx, req)
	if err != nil {
		return wizard.Result{}, err
	}
	role := Role(resp.User.Role)
	if !role.Valid() {
		role = Role(req.Role)
	}
	return wizard.Result{
		UserID:      resp.User.ID,
		Role:        string(role),
		Token:       resp.Token,
		Destination: Destination(role),
	}, nil
}

// OfflineRegistrar accepts every submission without contacting a backend.
// It is used when the console runs against the bundled sample data.
func OfflineRegistrar() wizard.Registrar {
	return wizard.RegistrarFunc(func(_ context.Context, form *wizard.FormState) (wizard.Result, error) {
		role := Role(form.String(FieldRole))
		if !role.Valid() {
			role = RoleFarmer
		}
		return wizard.Result{
			UserID:      "offline-" + uuid.NewString(),
			Role:        string(role),
			Destination: Destination(role),
		}, nil
	})
}
