package striga

import (
	"context"
	"fmt"
)

// IdentityService drives managed-user onboarding: user creation, email
// updates, and gateway connection with sandbox auto-approval.
type IdentityService struct {
	transport   Transport
	autoApprove bool
}

// NewIdentityService creates an identity workflow for the given
// environment. The auto-approval policy is fixed at construction; it is
// an environment property, not a caller choice.
func NewIdentityService(transport Transport, env Environment) *IdentityService {
	return &IdentityService{
		transport:   transport,
		autoApprove: env.AutoApproveGateway(),
	}
}

// CreateManagedUser creates a managed user with the given email.
func (s *IdentityService) CreateManagedUser(ctx context.Context, email string) (*ManagedUser, error) {
	var user ManagedUser
	endpoint := s.transport.Endpoints().API + "/user"
	if err := s.transport.Do(ctx, "POST", endpoint, &CreateUserRequest{Email: email}, &user); err != nil {
		return nil, fmt.Errorf("create managed user failed: %w", err)
	}
	return &user, nil
}

// UpdateEmail updates the email on an existing managed user.
func (s *IdentityService) UpdateEmail(ctx context.Context, userUUID, email string) (*ManagedUser, error) {
	var user ManagedUser
	endpoint := s.transport.Endpoints().API + "/user"
	if err := s.transport.Do(ctx, "PUT", endpoint, &UpdateUserRequest{UserUUID: userUUID, Email: email}, &user); err != nil {
		return nil, fmt.Errorf("update managed user email failed: %w", err)
	}
	return &user, nil
}

// GetUserState retrieves the provider's view of a managed user.
func (s *IdentityService) GetUserState(ctx context.Context, userID string) (*UserState, error) {
	var state UserState
	endpoint := fmt.Sprintf("%s/user/%s", s.transport.Endpoints().API, userID)
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &state); err != nil {
		return nil, fmt.Errorf("get user state failed: %w", err)
	}
	return &state, nil
}

// ConnectUserToGateway connects the managed user to a gateway. In
// sandbox the user is then approved in a second call and the method
// returns true; in production no approval is attempted and the method
// returns false, signaling that approval happens out-of-band. If the
// connect call fails the approval is never attempted.
func (s *IdentityService) ConnectUserToGateway(ctx context.Context, userUUID, gatewayUUID string) (bool, error) {
	api := s.transport.Endpoints().API

	err := s.transport.Do(ctx, "POST", api+"/user/gateway/connect",
		&ConnectGatewayRequest{GatewayUUID: gatewayUUID},
		nil,
		WithUserUUID(userUUID),
	)
	if err != nil {
		return false, fmt.Errorf("connect user to gateway failed: %w", err)
	}

	if !s.autoApprove {
		return false, nil
	}

	err = s.transport.Do(ctx, "PUT", api+"/user/kyc/approve",
		&approveUserRequest{Verified: 1, Reasons: []string{}, Message: ""},
		nil,
		WithUserUUID(userUUID),
	)
	if err != nil {
		return false, fmt.Errorf("sandbox user approval failed: %w", err)
	}

	return true, nil
}
