package user

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	pb "github.com/MikeMC777/valora-ecom/internal/userpb"
)

const lookupTimeout = 2 * time.Second

// Directory answers user lookups for services that do not own the users
// table, by calling user-service over gRPC.
type Directory struct {
	client pb.UserServiceClient
}

func NewDirectory(client pb.UserServiceClient) *Directory {
	return &Directory{client: client}
}

// Dial opens a lazy connection to user-service at target. The caller closes
// the returned conn.
func Dial(target string) (*Directory, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial user-service: %w", err)
	}
	return NewDirectory(pb.NewUserServiceClient(conn)), conn, nil
}

// DisplayName returns the username of id, or ErrNotFound.
func (d *Directory) DisplayName(ctx context.Context, id string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	out, err := d.client.GetUser(ctx, &pb.GetUserRequest{Id: id})
	if status.Code(err) == codes.NotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get user %s: %w", id, err)
	}
	return out.GetUser().GetUsername(), nil
}

func (d *Directory) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	out, err := d.client.ValidateUser(ctx, &pb.ValidateUserRequest{Id: id})
	if err != nil {
		return false, fmt.Errorf("validate user %s: %w", id, err)
	}
	return out.GetOk(), nil
}
