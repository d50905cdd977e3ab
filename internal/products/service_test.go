package products

import (
	"context"
	"errors"
	"testing"

	"github.com/juanfvasquez/pedidos-backend/internal/authz"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor = &authz.Principal{UserID: 1, OpenID: "admin", Role: enums.RoleAdmin}
	userActor  = &authz.Principal{UserID: 2, OpenID: "member", Role: enums.RoleUser}
)

type fakeProductRepo struct {
	listed   []models.Product
	listErr  error
	created  []*models.Product
	updates  map[int64]map[string]any
	deleted  []int64
	writeErr error
}

func (f *fakeProductRepo) ListActive(context.Context) ([]models.Product, error) {
	return f.listed, f.listErr
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.created = append(f.created, product)
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, id int64, assignments map[string]any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.updates == nil {
		f.updates = map[int64]map[string]any{}
	}
	f.updates[id] = assignments
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id int64) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(t *testing.T, repo *fakeProductRepo) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc
}

func TestServiceListDegradesToEmpty(t *testing.T) {
	repo := &fakeProductRepo{listErr: errors.New("connection refused")}
	svc := newTestService(t, repo)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestServiceMutationsAreAdminOnly(t *testing.T) {
	repo := &fakeProductRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()
	name := "Arepa"
	price := 100

	cases := []struct {
		name    string
		call    func(actor *authz.Principal) error
		message string
	}{
		{
			name:    "create",
			call:    func(a *authz.Principal) error { return svc.Create(ctx, a, CreateProductInput{Name: "Arepa", Price: 100}) },
			message: "only administrators may create products",
		},
		{
			name:    "update",
			call:    func(a *authz.Principal) error { return svc.Update(ctx, a, 1, UpdateProductInput{Name: &name, Price: &price}) },
			message: "only administrators may update products",
		},
		{
			name:    "delete",
			call:    func(a *authz.Principal) error { return svc.Delete(ctx, a, 1) },
			message: "only administrators may delete products",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call(userActor)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
			assert.Equal(t, tc.message, typed.Message())
		})
	}

	// Denials never reach the repository.
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.updates)
	assert.Empty(t, repo.deleted)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(t, &fakeProductRepo{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"empty name", CreateProductInput{Name: "", Price: 100}},
		{"blank name", CreateProductInput{Name: "   ", Price: 100}},
		{"zero price", CreateProductInput{Name: "Arepa", Price: 0}},
		{"negative price", CreateProductInput{Name: "Arepa", Price: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, adminActor, tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestServiceCreateTrimsName(t *testing.T) {
	repo := &fakeProductRepo{}
	svc := newTestService(t, repo)

	require.NoError(t, svc.Create(context.Background(), adminActor, CreateProductInput{Name: "  Arepa ", Price: 3000}))
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Arepa", repo.created[0].Name)
	assert.True(t, repo.created[0].Active)
}

func TestServiceUpdateRequiresAssignments(t *testing.T) {
	svc := newTestService(t, &fakeProductRepo{})

	err := svc.Update(context.Background(), adminActor, 1, UpdateProductInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceWriteFailuresSurfaceAsDependencyErrors(t *testing.T) {
	repo := &fakeProductRepo{writeErr: errors.New("down")}
	svc := newTestService(t, repo)

	err := svc.Create(context.Background(), adminActor, CreateProductInput{Name: "Arepa", Price: 100})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
