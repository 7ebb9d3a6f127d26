package service

import (
	"context"
	"strings"

	"github.com/dtroode/idlink/internal/model"
)

// memoryDirectory is a stateful model.Directory used to replay sign-ups.
type memoryDirectory struct {
	users     map[string]model.DirectoryUser
	passwords map[string]string
	links     map[model.FederatedIdentity]string
	creates   int
	failLink  error
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		users:     make(map[string]model.DirectoryUser),
		passwords: make(map[string]string),
		links:     make(map[model.FederatedIdentity]string),
	}
}

func (d *memoryDirectory) FindByEmail(_ context.Context, _, email string) (model.DirectoryUser, bool, error) {
	var matches []model.DirectoryUser
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) {
			matches = append(matches, u)
		}
	}
	switch len(matches) {
	case 0:
		return model.DirectoryUser{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return model.DirectoryUser{}, false, model.ErrAmbiguousUser
	}
}

func (d *memoryDirectory) CreateNativeUser(_ context.Context, _ string, profile model.NativeProfile) (model.DirectoryUser, error) {
	if _, ok := d.users[profile.Email]; ok {
		return model.DirectoryUser{}, model.ErrUserAlreadyExists
	}
	attrs := make(map[string]string)
	for _, a := range profile.Attributes() {
		attrs[string(a.Key)] = a.Value
	}
	u := model.DirectoryUser{Username: profile.Email, Email: profile.Email, Attributes: attrs}
	d.users[u.Username] = u
	d.creates++
	return u, nil
}

func (d *memoryDirectory) SetPermanentPassword(_ context.Context, _, username, secret string) error {
	if _, ok := d.users[username]; !ok {
		return model.ErrUserNotFound
	}
	d.passwords[username] = secret
	return nil
}

func (d *memoryDirectory) LinkFederatedIdentity(_ context.Context, _, username string, identity model.FederatedIdentity) error {
	if d.failLink != nil {
		return d.failLink
	}
	if owner, ok := d.links[identity]; ok {
		if owner == username {
			return nil
		}
		return model.ErrAlreadyLinked
	}
	d.links[identity] = username
	return nil
}

func (d *memoryDirectory) UpdateAttributes(_ context.Context, _, username string, updates ...model.AttributeUpdate) error {
	if err := model.ValidateUpdates(updates); err != nil {
		return err
	}
	u, ok := d.users[username]
	if !ok {
		return model.ErrUserNotFound
	}
	if u.Attributes == nil {
		u.Attributes = make(map[string]string)
	}
	for _, a := range updates {
		u.Attributes[string(a.Key)] = a.Value
	}
	d.users[username] = u
	return nil
}
