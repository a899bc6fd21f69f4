package user

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/MikeMC777/valora-ecom/internal/userpb"
)

// GRPCServer serves account lookups to order-service.
type GRPCServer struct {
	pb.UnimplementedUserServiceServer
	svc *Service
}

func NewGRPCServer(svc *Service) *GRPCServer {
	return &GRPCServer{svc: svc}
}

// GetUser
func (s *GRPCServer) GetUser(ctx context.Context, in *pb.GetUserRequest) (*pb.UserResponse, error) {
	if in.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	u, err := s.svc.Get(ctx, in.GetId())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, status.Errorf(codes.Internal, "get error: %v", err)
	}
	return &pb.UserResponse{User: &pb.User{
		Id: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}}, nil
}

// ValidateUser reports whether the id exists; an unknown id is not an error.
func (s *GRPCServer) ValidateUser(ctx context.Context, in *pb.ValidateUserRequest) (*pb.ValidateUserResponse, error) {
	if in.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	ok, err := s.svc.Exists(ctx, in.GetId())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "validate error: %v", err)
	}
	return &pb.ValidateUserResponse{Ok: ok}, nil
}
