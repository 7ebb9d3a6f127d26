package model

// FederatedIdentity is an external identity normalized from a federated identifier.
type FederatedIdentity struct {
	// ProviderName has its first character upper-cased, e.g. "Google".
	ProviderName      string
	ProviderSubjectID string
}

// String returns the identity in its raw "{provider}_{subject}" form.
func (i FederatedIdentity) String() string {
	return i.ProviderName + "_" + i.ProviderSubjectID
}
