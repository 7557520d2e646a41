package rbac

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"booking-platform/internal/auth"
)

// ErrForbidden matches every ForbiddenError via errors.Is.
var ErrForbidden = errors.New("forbidden")

// ForbiddenError is returned when a route declares a role requirement the
// caller does not meet. Required lists the accepted roles.
type ForbiddenError struct {
	Required        []string
	Unauthenticated bool
}

func (e *ForbiddenError) Error() string {
	if e.Unauthenticated {
		return "user not authenticated"
	}
	return "access denied, required roles: " + strings.Join(e.Required, ", ")
}

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// Requirement is the set of roles accepted by a route. An empty set accepts
// any caller, the same as declaring nothing.
type Requirement []string

func (r Requirement) allows(role string) bool {
	for _, want := range r {
		if want == role {
			return true
		}
	}
	return false
}

// Authorize decides whether p may proceed under req. ok reports whether a
// principal was resolved for the request.
func Authorize(p auth.Principal, ok bool, req Requirement) error {
	if len(req) == 0 {
		return nil
	}
	if !ok || p.ID == "" {
		return &ForbiddenError{Required: req, Unauthenticated: true}
	}
	if !req.allows(p.Role) {
		return &ForbiddenError{Required: req}
	}
	return nil
}

// Policy maps "METHOD /route/:param" to its declared requirement. It replaces
// per-handler annotations with one table consulted by Gate.
type Policy struct {
	mu     sync.RWMutex
	routes map[string]Requirement
}

func NewPolicy() *Policy {
	return &Policy{routes: make(map[string]Requirement)}
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Require declares the roles accepted on method+path. path is the gin route
// template (c.FullPath()), not the concrete URL. Unknown roles panic at
// startup rather than silently denying everyone.
func (p *Policy) Require(method, path string, roles ...string) *Policy {
	for _, r := range roles {
		if !IsValidRole(r) {
			panic(fmt.Sprintf("rbac: unknown role %q for %s %s", r, method, path))
		}
	}
	req := make(Requirement, len(roles))
	copy(req, roles)

	p.mu.Lock()
	p.routes[routeKey(method, path)] = req
	p.mu.Unlock()
	return p
}

// Lookup returns the requirement for a route and whether one was declared.
func (p *Policy) Lookup(method, path string) (Requirement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	req, ok := p.routes[routeKey(method, path)]
	return req, ok
}

// Unrouted lists declared requirements that match no registered route, so a
// typo in the table fails at startup instead of leaving a route ungated.
func (p *Policy) Unrouted(registered []string) []string {
	known := make(map[string]struct{}, len(registered))
	for _, k := range registered {
		known[k] = struct{}{}
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []string
	for k := range p.routes {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// RouteKey builds the key format used by Unrouted.
func RouteKey(method, path string) string { return routeKey(method, path) }
