package registry

import (
	"context"
	"fmt"

	"github.com/dualserve/dualserve/internal/calculator"
	"github.com/dualserve/dualserve/internal/users"
)

// Namespace qualifies envelope action selectors and body elements.
const Namespace = "http://tempuri.org/"

// Service identifiers shared by both adapters.
const (
	ServiceCalculator = "CalculatorService"
	ServiceUsers      = "UserService"
)

// BinaryArgs carries the two operands of a scalar calculator operation.
type BinaryArgs struct {
	A float64 `xml:"a" json:"a"`
	B float64 `xml:"b" json:"b"`
}

// EmptyArgs is used by operations that take no arguments.
type EmptyArgs struct{}

// CalculateArgs wraps the request-object shape of the Calculate operation.
type CalculateArgs struct {
	Request calculator.CalculationRequest `xml:"request" json:"request"`
}

// EvaluateArgs carries a free-form expression.
type EvaluateArgs struct {
	Expression string `xml:"expression" json:"expression"`
}

// CreateUserArgs wraps the request-object shape of the CreateUser operation.
type CreateUserArgs struct {
	Request users.CreateUserRequest `xml:"request" json:"request"`
}

// UserIDArgs carries a user id.
type UserIDArgs struct {
	UserID int64 `xml:"userId" json:"userId"`
}

// EmailArgs carries an email address.
type EmailArgs struct {
	Email string `xml:"email" json:"email"`
}

// UpdateUserArgs wraps the full user record accepted by UpdateUser.
type UpdateUserArgs struct {
	User users.User `xml:"user" json:"user"`
}

// Action builds the namespaced action selector for a service operation.
func Action(service, name string) string {
	return Namespace + service + "/" + name
}

// RegisterAll wires every domain operation into the registry once. Scalar
// calculator operations funnel through Calculate so both protocol surfaces
// share one dispatch path.
func RegisterAll(r *Registry, calc calculator.CalculatorService, userSvc users.UserService) error {
	scalar := func(name, operation string) *Operation {
		return &Operation{
			Name:     name,
			Service:  ServiceCalculator,
			Action:   Action(ServiceCalculator, name),
			NewArgs:  func() any { return &BinaryArgs{} },
			Required: []string{"a", "b"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*BinaryArgs)
				if !ok {
					return nil, badArgs(name, args)
				}
				return calc.Calculate(&calculator.CalculationRequest{
					FirstNumber:  a.A,
					SecondNumber: a.B,
					Operation:    operation,
				}), nil
			},
		}
	}

	ops := []*Operation{
		scalar("Add", "add"),
		scalar("Subtract", "subtract"),
		scalar("Multiply", "multiply"),
		scalar("Divide", "divide"),
		{
			Name:     "Calculate",
			Service:  ServiceCalculator,
			Action:   Action(ServiceCalculator, "Calculate"),
			NewArgs:  func() any { return &CalculateArgs{} },
			Required: []string{"request"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*CalculateArgs)
				if !ok {
					return nil, badArgs("Calculate", args)
				}
				return calc.Calculate(&a.Request), nil
			},
		},
		{
			Name:     "Evaluate",
			Service:  ServiceCalculator,
			Action:   Action(ServiceCalculator, "Evaluate"),
			NewArgs:  func() any { return &EvaluateArgs{} },
			Required: []string{"expression"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*EvaluateArgs)
				if !ok {
					return nil, badArgs("Evaluate", args)
				}
				return calc.Evaluate(a.Expression), nil
			},
		},
		{
			Name:    "GetCalculatorInfo",
			Service: ServiceCalculator,
			Action:  Action(ServiceCalculator, "GetCalculatorInfo"),
			NewArgs: func() any { return &EmptyArgs{} },
			Invoke: func(ctx context.Context, args any) (any, error) {
				return calc.Info(), nil
			},
		},
		{
			Name:     "CreateUser",
			Service:  ServiceUsers,
			Action:   Action(ServiceUsers, "CreateUser"),
			NewArgs:  func() any { return &CreateUserArgs{} },
			Required: []string{"request"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*CreateUserArgs)
				if !ok {
					return nil, badArgs("CreateUser", args)
				}
				return userSvc.CreateUser(ctx, &a.Request), nil
			},
		},
		{
			Name:     "GetUserById",
			Service:  ServiceUsers,
			Action:   Action(ServiceUsers, "GetUserById"),
			NewArgs:  func() any { return &UserIDArgs{} },
			Required: []string{"userId"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*UserIDArgs)
				if !ok {
					return nil, badArgs("GetUserById", args)
				}
				return userSvc.GetUserByID(ctx, a.UserID), nil
			},
		},
		{
			Name:     "GetUserByEmail",
			Service:  ServiceUsers,
			Action:   Action(ServiceUsers, "GetUserByEmail"),
			NewArgs:  func() any { return &EmailArgs{} },
			Required: []string{"email"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*EmailArgs)
				if !ok {
					return nil, badArgs("GetUserByEmail", args)
				}
				return userSvc.GetUserByEmail(ctx, a.Email), nil
			},
		},
		{
			Name:    "GetAllUsers",
			Service: ServiceUsers,
			Action:  Action(ServiceUsers, "GetAllUsers"),
			NewArgs: func() any { return &EmptyArgs{} },
			Invoke: func(ctx context.Context, args any) (any, error) {
				return userSvc.GetAllUsers(ctx), nil
			},
		},
		{
			Name:     "UpdateUser",
			Service:  ServiceUsers,
			Action:   Action(ServiceUsers, "UpdateUser"),
			NewArgs:  func() any { return &UpdateUserArgs{} },
			Required: []string{"user"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*UpdateUserArgs)
				if !ok {
					return nil, badArgs("UpdateUser", args)
				}
				return userSvc.UpdateUser(ctx, &a.User), nil
			},
		},
		{
			Name:     "DeleteUser",
			Service:  ServiceUsers,
			Action:   Action(ServiceUsers, "DeleteUser"),
			NewArgs:  func() any { return &UserIDArgs{} },
			Required: []string{"userId"},
			Invoke: func(ctx context.Context, args any) (any, error) {
				a, ok := args.(*UserIDArgs)
				if !ok {
					return nil, badArgs("DeleteUser", args)
				}
				return userSvc.DeleteUser(ctx, a.UserID), nil
			},
		},
	}

	for _, op := range ops {
		if err := r.Register(op); err != nil {
			return err
		}
	}
	return nil
}

func badArgs(name string, args any) error {
	return fmt.Errorf("operation %s: unexpected argument type %T", name, args)
}
