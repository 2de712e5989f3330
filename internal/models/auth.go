package models

import "github.com/golang-jwt/jwt/v5"

// Role names recognized by the API.
const (
	RoleDepartmentHead = "DEPARTMENT_HEAD"
	RoleRegistrar      = "REGISTRAR"
)

// AuthClaims are the JWT claims carried by authenticated requests.
// Department heads are bound to a single program.
type AuthClaims struct {
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	ProgramID string `json:"programId"`
	jwt.RegisteredClaims
}
