package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	serviceName          = "ledgerd.v1.LedgerService"
	getLedgerEntryMethod = "/" + serviceName + "/GetLedgerEntry"
)

// LedgerServiceServer is the server API of the ledger service.
type LedgerServiceServer interface {
	GetLedgerEntry(context.Context, *GetLedgerEntryRequest) (*GetLedgerEntryResponse, error)
}

// RegisterLedgerServiceServer attaches srv to a gRPC server.
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&ledgerServiceDesc, srv)
}

func getLedgerEntryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLedgerEntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetLedgerEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getLedgerEntryMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetLedgerEntry(ctx, req.(*GetLedgerEntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var ledgerServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetLedgerEntry",
			Handler:    getLedgerEntryHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledgerd/v1/ledger.proto",
}
