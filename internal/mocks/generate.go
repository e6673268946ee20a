// Package mocks provides mock implementations for testing the storefront admin console.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	storage := mocks.NewMockStorage(ctrl)
//	storage.EXPECT().Load(gomock.Any(), "browser-1", "admin_token").Return(map[string]string{}, nil)
package mocks

// Generate mocks for the storage ports from internal/ports.
// This creates MockStorage (Load, Store, Remove) and MockBrowserStorage (Get, SetAll, Remove).
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=storage_mock.go github.com/target/storefront-admin/internal/ports Storage,BrowserStorage

// Generate mock for the Authenticator port.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=authenticator_mock.go github.com/target/storefront-admin/internal/ports Authenticator
