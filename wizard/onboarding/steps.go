// Package onboarding defines the three-step registration flow: basic
// account details, location, and role selection.
package onboarding

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BrianJOC/agri-console/wizard"
)

const (
	StepBasicInfo     = "basic_info"
	StepLocation      = "location"
	StepRoleSelection = "role_selection"

	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldCountry         = "location.country"
	FieldRegion          = "location.region"
	FieldPhoneNumber     = "phoneNumber"
	FieldRole            = "role"

	minPasswordLength = 6
)

// Role identifies which dashboard a registered user lands on.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleVendor Role = "vendor"
	RoleNGO    Role = "ngo"
)

// Roles lists the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleFarmer, RoleVendor, RoleNGO}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleVendor, RoleNGO:
		return true
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// BasicInfo collects name, email and password.
type BasicInfo struct{}

func (BasicInfo) Metadata() wizard.StepMetadata {
	return wizard.StepMetadata{
		ID:          StepBasicInfo,
		Title:       "Basic Information",
		Description: "Tell us who you are and choose a password.",
		Fields: []wizard.FieldDefinition{
			wizard.TextField(FieldName, "Full Name", wizard.Required(), wizard.WithPlaceholder("Your full name"), wizard.WithDefault("")),
			wizard.TextField(FieldEmail, "Email Address", wizard.Required(), wizard.WithPlaceholder("email@example.com"), wizard.WithDefault("")),
			wizard.SecretField(FieldPassword, "Password", wizard.Required(), wizard.WithPlaceholder("At least 6 characters"), wizard.WithDefault("")),
			wizard.SecretField(FieldConfirmPassword, "Confirm Password", wizard.Required(), wizard.WithPlaceholder("Repeat your password"), wizard.WithDefault("")),
		},
	}
}

func (BasicInfo) Validate(form *wizard.FormState) wizard.ErrorMap {
	errs := wizard.ErrorMap{}

	if strings.TrimSpace(form.String(FieldName)) == "" {
		errs[FieldName] = "Name is required"
	}

	email := form.String(FieldEmail)
	switch {
	case strings.TrimSpace(email) == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Email is invalid"
	}

	password := form.String(FieldPassword)
	switch {
	case password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(password) < minPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	if password != form.String(FieldConfirmPassword) {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}
	return errs
}

// Location collects country, region and an optional phone number.
type Location struct{}

func (Location) Metadata() wizard.StepMetadata {
	return wizard.StepMetadata{
		ID:          StepLocation,
		Title:       "Location",
		Description: "Where do you farm, trade or operate?",
		Fields: []wizard.FieldDefinition{
			wizard.TextField(FieldCountry, "Country", wizard.Required(), wizard.WithPlaceholder("e.g. Kenya"), wizard.WithDefault("")),
			wizard.TextField(FieldRegion, "Region/State", wizard.Required(), wizard.WithPlaceholder("e.g. Eastern"), wizard.WithDefault("")),
			wizard.TextField(FieldPhoneNumber, "Phone Number (optional)", wizard.Optional(), wizard.WithPlaceholder("+254 700 000000"), wizard.WithDefault("")),
		},
	}
}

func (Location) Validate(form *wizard.FormState) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	if strings.TrimSpace(form.String(FieldCountry)) == "" {
		errs[FieldCountry] = "Country is required"
	}
	if strings.TrimSpace(form.String(FieldRegion)) == "" {
		errs[FieldRegion] = "Region is required"
	}
	return errs
}

// RoleSelection picks the dashboard the user registers for. Farmer is preselected.
type RoleSelection struct{}

func (RoleSelection) Metadata() wizard.StepMetadata {
	return wizard.StepMetadata{
		ID:          StepRoleSelection,
		Title:       "Select Your Role",
		Description: "Choose how you will use the platform.",
		Fields: []wizard.FieldDefinition{
			wizard.SelectField(FieldRole, "Role", []wizard.FieldOption{
				{Value: string(RoleFarmer), Label: "Farmer", Description: "Track crops, predict yields, and get weather alerts"},
				{Value: string(RoleVendor), Label: "Vendor", Description: "Manage inventory and reduce spoilage"},
				{Value: string(RoleNGO), Label: "NGO", Description: "Analyze regional data and support farmers"},
			}, wizard.Required(), wizard.WithDefault(string(RoleFarmer))),
		},
	}
}

func (RoleSelection) Validate(form *wizard.FormState) wizard.ErrorMap {
	errs := wizard.ErrorMap{}
	if !Role(form.String(FieldRole)).Valid() {
		errs[FieldRole] = "Please select a role"
	}
	return errs
}

// Steps returns the onboarding steps in order.
func Steps() []wizard.Step {
	return []wizard.Step{BasicInfo{}, Location{}, RoleSelection{}}
}

// NewController builds a Controller with the onboarding steps registered.
func NewController(opts ...wizard.ControllerOption) (*wizard.Controller, error) {
	c := wizard.NewController(opts...)
	if err := c.Register(Steps()...); err != nil {
		return nil, err
	}
	return c, nil
}

// Destination returns the dashboard route for a role.
func Destination(role Role) string {
	return "/dashboard/" + string(role)
}
