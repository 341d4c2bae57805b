package bookingv1

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "booking.v1.BookingService"

// FullMethod returns the grpc method path for name.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

type BookingServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	Refresh(context.Context, *RefreshRequest) (*AuthResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Me(context.Context, *Empty) (*User, error)
	GetProfile(context.Context, *Empty) (*User, error)
	UpdateProfile(context.Context, *Profile) (*MessageResponse, error)

	GetSlots(context.Context, *GetSlotsRequest) (*GetSlotsResponse, error)
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error)
	CancelBooking(context.Context, *IDRequest) (*CancelBookingResponse, error)
	MyBookings(context.Context, *Empty) (*BookingList, error)

	JoinWaitlist(context.Context, *SlotRequest) (*JoinWaitlistResponse, error)
	LeaveWaitlist(context.Context, *IDRequest) (*MessageResponse, error)
	MyWaitlist(context.Context, *Empty) (*WaitlistList, error)
	SlotWaitlist(context.Context, *SlotRequest) (*WaitlistList, error)

	ListPackages(context.Context, *Empty) (*ListPackagesResponse, error)
	PurchaseCredits(context.Context, *PurchaseCreditsRequest) (*PurchaseCreditsResponse, error)
	CreditBalance(context.Context, *Empty) (*CreditBalanceResponse, error)
	MyTransactions(context.Context, *Empty) (*TransactionList, error)

	ListNotifications(context.Context, *ListNotificationsRequest) (*NotificationList, error)
	MarkNotificationRead(context.Context, *IDRequest) (*MessageResponse, error)
	MarkAllNotificationsRead(context.Context, *Empty) (*MessageResponse, error)

	AdminListBookings(context.Context, *AdminListBookingsRequest) (*BookingList, error)
	AdminListClients(context.Context, *Empty) (*UserList, error)
	AdminListTransactions(context.Context, *AdminListTransactionsRequest) (*TransactionList, error)
	AdminConfirmTransaction(context.Context, *IDRequest) (*MessageResponse, error)
	AdminMakeAdmin(context.Context, *IDRequest) (*MessageResponse, error)
	AdminUpdateSessionTimes(context.Context, *Settings) (*Settings, error)

	GetSettings(context.Context, *Empty) (*Settings, error)
}

// unary builds the MethodDesc for one call. PReq pins the request's pointer
// type so a fresh value can be allocated per call.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp any](name string, call func(BookingServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BookingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(BookingServiceServer), ctx, req.(PReq))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", BookingServiceServer.Register),
		unary("Login", BookingServiceServer.Login),
		unary("Refresh", BookingServiceServer.Refresh),
		unary("Logout", BookingServiceServer.Logout),
		unary("Me", BookingServiceServer.Me),
		unary("GetProfile", BookingServiceServer.GetProfile),
		unary("UpdateProfile", BookingServiceServer.UpdateProfile),
		unary("GetSlots", BookingServiceServer.GetSlots),
		unary("CreateBooking", BookingServiceServer.CreateBooking),
		unary("CancelBooking", BookingServiceServer.CancelBooking),
		unary("MyBookings", BookingServiceServer.MyBookings),
		unary("JoinWaitlist", BookingServiceServer.JoinWaitlist),
		unary("LeaveWaitlist", BookingServiceServer.LeaveWaitlist),
		unary("MyWaitlist", BookingServiceServer.MyWaitlist),
		unary("SlotWaitlist", BookingServiceServer.SlotWaitlist),
		unary("ListPackages", BookingServiceServer.ListPackages),
		unary("PurchaseCredits", BookingServiceServer.PurchaseCredits),
		unary("CreditBalance", BookingServiceServer.CreditBalance),
		unary("MyTransactions", BookingServiceServer.MyTransactions),
		unary("ListNotifications", BookingServiceServer.ListNotifications),
		unary("MarkNotificationRead", BookingServiceServer.MarkNotificationRead),
		unary("MarkAllNotificationsRead", BookingServiceServer.MarkAllNotificationsRead),
		unary("AdminListBookings", BookingServiceServer.AdminListBookings),
		unary("AdminListClients", BookingServiceServer.AdminListClients),
		unary("AdminListTransactions", BookingServiceServer.AdminListTransactions),
		unary("AdminConfirmTransaction", BookingServiceServer.AdminConfirmTransaction),
		unary("AdminMakeAdmin", BookingServiceServer.AdminMakeAdmin),
		unary("AdminUpdateSessionTimes", BookingServiceServer.AdminUpdateSessionTimes),
		unary("GetSettings", BookingServiceServer.GetSettings),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking/v1/booking.proto",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls BookingService over cc. The connection must use Codec, e.g.
// grpc.WithDefaultCallOptions(grpc.ForceCodec(bookingv1.Codec{})).
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in Message, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Register", in, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Login", in, opts...)
}

func (c *Client) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, "Refresh", in, opts...)
}

func (c *Client) Logout(ctx context.Context, opts ...grpc.CallOption) error {
	_, err := invoke[Empty](ctx, c.cc, "Logout", &Empty{}, opts...)
	return err
}

func (c *Client) Me(ctx context.Context, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "Me", &Empty{}, opts...)
}

func (c *Client) GetProfile(ctx context.Context, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, "GetProfile", &Empty{}, opts...)
}

func (c *Client) UpdateProfile(ctx context.Context, in *Profile, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "UpdateProfile", in, opts...)
}

func (c *Client) GetSlots(ctx context.Context, in *GetSlotsRequest, opts ...grpc.CallOption) (*GetSlotsResponse, error) {
	return invoke[GetSlotsResponse](ctx, c.cc, "GetSlots", in, opts...)
}

func (c *Client) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error) {
	return invoke[CreateBookingResponse](ctx, c.cc, "CreateBooking", in, opts...)
}

func (c *Client) CancelBooking(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*CancelBookingResponse, error) {
	return invoke[CancelBookingResponse](ctx, c.cc, "CancelBooking", in, opts...)
}

func (c *Client) MyBookings(ctx context.Context, opts ...grpc.CallOption) (*BookingList, error) {
	return invoke[BookingList](ctx, c.cc, "MyBookings", &Empty{}, opts...)
}

func (c *Client) JoinWaitlist(ctx context.Context, in *SlotRequest, opts ...grpc.CallOption) (*JoinWaitlistResponse, error) {
	return invoke[JoinWaitlistResponse](ctx, c.cc, "JoinWaitlist", in, opts...)
}

func (c *Client) LeaveWaitlist(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "LeaveWaitlist", in, opts...)
}

func (c *Client) MyWaitlist(ctx context.Context, opts ...grpc.CallOption) (*WaitlistList, error) {
	return invoke[WaitlistList](ctx, c.cc, "MyWaitlist", &Empty{}, opts...)
}

func (c *Client) SlotWaitlist(ctx context.Context, in *SlotRequest, opts ...grpc.CallOption) (*WaitlistList, error) {
	return invoke[WaitlistList](ctx, c.cc, "SlotWaitlist", in, opts...)
}

func (c *Client) ListPackages(ctx context.Context, opts ...grpc.CallOption) (*ListPackagesResponse, error) {
	return invoke[ListPackagesResponse](ctx, c.cc, "ListPackages", &Empty{}, opts...)
}

func (c *Client) PurchaseCredits(ctx context.Context, in *PurchaseCreditsRequest, opts ...grpc.CallOption) (*PurchaseCreditsResponse, error) {
	return invoke[PurchaseCreditsResponse](ctx, c.cc, "PurchaseCredits", in, opts...)
}

func (c *Client) CreditBalance(ctx context.Context, opts ...grpc.CallOption) (*CreditBalanceResponse, error) {
	return invoke[CreditBalanceResponse](ctx, c.cc, "CreditBalance", &Empty{}, opts...)
}

func (c *Client) MyTransactions(ctx context.Context, opts ...grpc.CallOption) (*TransactionList, error) {
	return invoke[TransactionList](ctx, c.cc, "MyTransactions", &Empty{}, opts...)
}

func (c *Client) ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*NotificationList, error) {
	return invoke[NotificationList](ctx, c.cc, "ListNotifications", in, opts...)
}

func (c *Client) MarkNotificationRead(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "MarkNotificationRead", in, opts...)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "MarkAllNotificationsRead", &Empty{}, opts...)
}

func (c *Client) AdminListBookings(ctx context.Context, in *AdminListBookingsRequest, opts ...grpc.CallOption) (*BookingList, error) {
	return invoke[BookingList](ctx, c.cc, "AdminListBookings", in, opts...)
}

func (c *Client) AdminListClients(ctx context.Context, opts ...grpc.CallOption) (*UserList, error) {
	return invoke[UserList](ctx, c.cc, "AdminListClients", &Empty{}, opts...)
}

func (c *Client) AdminListTransactions(ctx context.Context, in *AdminListTransactionsRequest, opts ...grpc.CallOption) (*TransactionList, error) {
	return invoke[TransactionList](ctx, c.cc, "AdminListTransactions", in, opts...)
}

func (c *Client) AdminConfirmTransaction(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "AdminConfirmTransaction", in, opts...)
}

func (c *Client) AdminMakeAdmin(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, "AdminMakeAdmin", in, opts...)
}

func (c *Client) AdminUpdateSessionTimes(ctx context.Context, in *Settings, opts ...grpc.CallOption) (*Settings, error) {
	return invoke[Settings](ctx, c.cc, "AdminUpdateSessionTimes", in, opts...)
}

func (c *Client) GetSettings(ctx context.Context, opts ...grpc.CallOption) (*Settings, error) {
	return invoke[Settings](ctx, c.cc, "GetSettings", &Empty{}, opts...)
}
