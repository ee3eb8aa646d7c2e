package models

// UpdateRoleRequest is the body of PATCH /updateRole/:id.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// StatusRequest is the body of the status endpoints. Status is kept as the
// decoded JSON value because blogs, guides and packages use different types.
type StatusRequest struct {
	Status interface{} `json:"status"`
}

// CheckRoleResponse is returned by POST /check-role.
type CheckRoleResponse struct {
	Role string `json:"role"`
}

// ExistsResponse is returned by GET /user-exists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
