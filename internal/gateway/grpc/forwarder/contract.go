//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=forwarder_test
package forwarder

import (
	"context"

	"google.golang.org/grpc"
)

// client - подмножество grpc.ClientConnInterface. Сервис партнера описан
// без сгенерированного кода: запрос и ответ - google.protobuf.Struct.
type client interface {
	Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
