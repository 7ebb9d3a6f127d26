package handler

import (
	"errors"

	"github.com/dtroode/idlink/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrMalformedIdentifier),
		errors.Is(err, model.ErrUnknownTriggerSource),
		errors.Is(err, model.ErrUnknownAttribute):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrUserAlreadyExists):
		return status.Error(codes.AlreadyExists, "user already exists")
	case errors.Is(err, model.ErrAlreadyLinked):
		return status.Error(codes.FailedPrecondition, "identity is linked to another user")
	case errors.Is(err, model.ErrAmbiguousUser):
		return status.Error(codes.FailedPrecondition, "email matches more than one user")
	case errors.Is(err, model.ErrUserNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, model.ErrDirectoryUnavailable):
		return status.Error(codes.Unavailable, "directory unavailable")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
