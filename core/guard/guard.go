// Package guard decides whether a navigation may proceed based on the
// current session, redirecting to the login page otherwise.
package guard

const LoginPath = "/login"

// Identity is the slice of session state the guard consults.
type Identity interface {
	IsAuthenticated() bool
	HasRole(role string) bool
}

// Decision carries the outcome of a guard check. When the navigation
// is denied, RedirectTo names the replacement target and From keeps
// the attempted location so login can return there.
type Decision struct {
	Allowed    bool
	RedirectTo string
	From       string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(from string) Decision {
	return Decision{RedirectTo: LoginPath, From: from}
}

func Authenticated(id Identity, from string) Decision {
	if id.IsAuthenticated() {
		return allow()
	}
	return deny(from)
}

func Role(id Identity, role string, from string) Decision {
	if id.HasRole(role) {
		return allow()
	}
	return deny(from)
}

func Customer(id Identity, from string) Decision {
	return Role(id, "CUSTOMER", from)
}

func Admin(id Identity, from string) Decision {
	return Role(id, "ADMIN", from)
}

func Delivery(id Identity, from string) Decision {
	return Role(id, "DELIVERY", from)
}
