package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/fandressouza/indicacoes/domain"
)

// Casbin roles. Each role inherits the permissions of the one before it.
const (
	RoleAnonymous = "role_anonymous"
	RoleUser      = "role_user"
	RoleAdmin     = "role_admin"
)

// RouteModel matches request paths with keyMatch2 (so /approve/:id patterns work) and
// methods with a regex.
const RouteModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService creates an enforcer whose policies are persisted through the gorm adapter
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// NewInMemoryCasbinService creates an enforcer with no backing store. Used by the
// mongo deployment and by tests.
func NewInMemoryCasbinService() (*CasbinService, error) {
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// SeedRoutePolicies installs the route table. AddPolicy is a no-op for existing rules,
// so seeding is safe on every start.
func SeedRoutePolicies(e domain.CasbinEnforcer) error {
	anyMethod := "(GET|POST)"
	policies := [][]string{
		{RoleAnonymous, "/", "GET"},
		{RoleAnonymous, "/home", "GET"},
		{RoleAnonymous, "/health", "GET"},
		{RoleAnonymous, "/metrics", "GET"},
		{RoleAnonymous, "/uploads/*", "(GET|HEAD)"},
		{RoleAnonymous, "/login", anyMethod},
		{RoleAnonymous, "/register", anyMethod},
		{RoleAnonymous, "/view", anyMethod},
		{RoleAnonymous, "/view/:category", anyMethod},
		{RoleAnonymous, "/advert/:id", anyMethod},

		{RoleUser, "/logout", "GET"},
		{RoleUser, "/profile", "GET"},
		{RoleUser, "/add", anyMethod},

		{RoleAdmin, "/admin", anyMethod},
		{RoleAdmin, "/approve/:id", anyMethod},
		{RoleAdmin, "/reject/:id", anyMethod},
		{RoleAdmin, "/user/:id", anyMethod},
		{RoleAdmin, "/user/:id/ban", "POST"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("add policy %v: %w", p, err)
		}
	}

	if _, err := e.AddGroupingPolicy(RoleUser, RoleAnonymous); err != nil {
		return err
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleUser); err != nil {
		return err
	}
	return nil
}
