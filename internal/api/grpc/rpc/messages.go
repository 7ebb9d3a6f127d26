// Package rpc defines the wire contract of the idlink.Triggers gRPC service.
// Messages travel as JSON using the field names of directory trigger events.
package rpc

// PreSignUpRequest carries a pre sign-up trigger.
type PreSignUpRequest struct {
	TriggerSource  string            `json:"triggerSource"`
	UserPoolID     string            `json:"userPoolId"`
	UserName       string            `json:"userName"`
	UserAttributes map[string]string `json:"userAttributes"`
}

// PreSignUpResponse carries the amended trigger response and what was done.
type PreSignUpResponse struct {
	AutoConfirmUser bool   `json:"autoConfirmUser"`
	AutoVerifyEmail bool   `json:"autoVerifyEmail"`
	Action          string `json:"action"`
	Username        string `json:"username,omitempty"`
}

// PostAuthenticationRequest carries a post authentication trigger.
type PostAuthenticationRequest struct {
	UserPoolID     string            `json:"userPoolId"`
	UserName       string            `json:"userName"`
	UserAttributes map[string]string `json:"userAttributes"`
}

// PostAuthenticationResponse lists attributes written back to the directory.
type PostAuthenticationResponse struct {
	Action            string            `json:"action"`
	UpdatedAttributes map[string]string `json:"updatedAttributes,omitempty"`
}
