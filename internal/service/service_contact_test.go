package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/models"
)

// mockContactRepository is a function-field test double for
// [store.ContactRepository].
type mockContactRepository struct {
	createContactFn       func(ctx context.Context, contact models.Contact) (models.Contact, error)
	getContactFn          func(ctx context.Context, id int64) (models.Contact, error)
	listContactsFn        func(ctx context.Context) ([]models.Contact, error)
	updateContactFn       func(ctx context.Context, contact models.Contact) (models.Contact, error)
	softDeleteContactFn   func(ctx context.Context, id int64) error
	listDeletedContactsFn func(ctx context.Context) ([]models.Contact, error)
	restoreContactFn      func(ctx context.Context, id int64) error
	purgeContactFn        func(ctx context.Context, id int64) error
}

func (m *mockContactRepository) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	return m.createContactFn(ctx, contact)
}

func (m *mockContactRepository) GetContact(ctx context.Context, id int64) (models.Contact, error) {
	return m.getContactFn(ctx, id)
}

func (m *mockContactRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return m.listContactsFn(ctx)
}

func (m *mockContactRepository) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	return m.updateContactFn(ctx, contact)
}

func (m *mockContactRepository) SoftDeleteContact(ctx context.Context, id int64) error {
	return m.softDeleteContactFn(ctx, id)
}

func (m *mockContactRepository) ListDeletedContacts(ctx context.Context) ([]models.Contact, error) {
	return m.listDeletedContactsFn(ctx)
}

func (m *mockContactRepository) RestoreContact(ctx context.Context, id int64) error {
	return m.restoreContactFn(ctx, id)
}

func (m *mockContactRepository) PurgeContact(ctx context.Context, id int64) error {
	return m.purgeContactFn(ctx, id)
}

func TestCreateContact_ValidationTableTest(t *testing.T) {
	tests := []struct {
		name    string
		request models.ContactRequest
		wantErr error
	}{
		{
			name:    "missing name",
			request: models.ContactRequest{Type: "friend"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "missing type",
			request: models.ContactRequest{Name: "Alice"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "empty request",
			request: models.ContactRequest{},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "valid request",
			request: models.ContactRequest{Name: "Alice", Type: "friend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockContactRepository{
				createContactFn: func(_ context.Context, contact models.Contact) (models.Contact, error) {
					return contact, nil
				},
			}
			svc := NewContactService(repo, logger.Nop())

			_, err := svc.CreateContact(context.Background(), tt.request)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateContact_AppliesDefaults(t *testing.T) {
	var persisted models.Contact
	repo := &mockContactRepository{
		createContactFn: func(_ context.Context, contact models.Contact) (models.Contact, error) {
			persisted = contact
			return contact, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())

	_, err := svc.CreateContact(context.Background(), models.ContactRequest{Name: "Alice", Type: "friend"})
	require.NoError(t, err)

	assert.Equal(t, "normal", persisted.RelationshipLevel)
	assert.Equal(t, "unknown", persisted.Gender)
	assert.Equal(t, int64(50), persisted.ImportanceScore)
}

func TestCreateContact_KeepsExplicitValues(t *testing.T) {
	var persisted models.Contact
	repo := &mockContactRepository{
		createContactFn: func(_ context.Context, contact models.Contact) (models.Contact, error) {
			persisted = contact
			return contact, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())

	_, err := svc.CreateContact(context.Background(), models.ContactRequest{
		Name:              "Alice",
		Type:              "friend",
		RelationshipLevel: "close",
		Gender:            "female",
		ImportanceScore:   90,
	})
	require.NoError(t, err)

	assert.Equal(t, "close", persisted.RelationshipLevel)
	assert.Equal(t, "female", persisted.Gender)
	assert.Equal(t, int64(90), persisted.ImportanceScore)
}

func TestUpdateContact_SetsIDFromPath(t *testing.T) {
	var updated models.Contact
	repo := &mockContactRepository{
		updateContactFn: func(_ context.Context, contact models.Contact) (models.Contact, error) {
			updated = contact
			return contact, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())

	_, err := svc.UpdateContact(context.Background(), 42, models.ContactRequest{Name: "Alice", Type: "friend"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), updated.ID)
}

func TestUpdateContact_RejectsInvalidData(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, logger.Nop())

	_, err := svc.UpdateContact(context.Background(), 42, models.ContactRequest{Name: "Alice"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestContactService_DelegatesLifecycleCalls(t *testing.T) {
	calls := make(map[string]int64)

	repo := &mockContactRepository{
		softDeleteContactFn: func(_ context.Context, id int64) error {
			calls["soft-delete"] = id
			return nil
		},
		restoreContactFn: func(_ context.Context, id int64) error {
			calls["restore"] = id
			return nil
		},
		purgeContactFn: func(_ context.Context, id int64) error {
			calls["purge"] = id
			return nil
		},
		listContactsFn: func(_ context.Context) ([]models.Contact, error) {
			calls["list"] = -1
			return nil, nil
		},
		listDeletedContactsFn: func(_ context.Context) ([]models.Contact, error) {
			calls["trash"] = -1
			return nil, nil
		},
	}
	svc := NewContactService(repo, logger.Nop())
	ctx := context.Background()

	require.NoError(t, svc.DeleteContact(ctx, 7))
	require.NoError(t, svc.RestoreContact(ctx, 8))
	require.NoError(t, svc.PurgeContact(ctx, 9))

	_, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	_, err = svc.ListTrash(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(7), calls["soft-delete"])
	assert.Equal(t, int64(8), calls["restore"])
	assert.Equal(t, int64(9), calls["purge"])
	assert.Contains(t, calls, "list")
	assert.Contains(t, calls, "trash")
}
