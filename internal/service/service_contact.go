package service

import (
	"context"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/store"
	"github.com/social-memo/social-memo/models"
)

// Contact field defaults applied when a request leaves them unset, matching
// the schema's column defaults.
const (
	defaultRelationshipLevel = "normal"
	defaultGender            = "unknown"
	defaultImportanceScore   = 50
)

// contactService is the concrete implementation of ContactService. It
// validates requests at the boundary and delegates persistence to the
// ContactRepository.
type contactService struct {
	contactRepository store.ContactRepository
	logger            *logger.Logger
}

// NewContactService constructs a ContactService backed by the given
// repository.
func NewContactService(contactRepository store.ContactRepository, logger *logger.Logger) ContactService {
	return &contactService{
		contactRepository: contactRepository,
		logger:            logger,
	}
}

// CreateContact validates the request and persists a new contact.
// Returns ErrInvalidDataProvided when the name or type is missing.
func (c *contactService) CreateContact(ctx context.Context, req models.ContactRequest) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Type == "" {
		log.Error().Any("request", req).Msg("invalid contact data provided")
		return models.Contact{}, ErrInvalidDataProvided
	}

	return c.contactRepository.CreateContact(ctx, contactFromRequest(req))
}

// UpdateContact validates the request and rewrites the contact's mutable
// fields. Soft-deleted contacts cannot be updated.
func (c *contactService) UpdateContact(ctx context.Context, id int64, req models.ContactRequest) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Type == "" {
		log.Error().Any("request", req).Msg("invalid contact data provided")
		return models.Contact{}, ErrInvalidDataProvided
	}

	contact := contactFromRequest(req)
	contact.ID = id

	return c.contactRepository.UpdateContact(ctx, contact)
}

// ListContacts returns every live contact.
func (c *contactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return c.contactRepository.ListContacts(ctx)
}

// DeleteContact soft-deletes a contact; its satellite rows are retained
// and the contact stays recoverable via RestoreContact.
func (c *contactService) DeleteContact(ctx context.Context, id int64) error {
	return c.contactRepository.SoftDeleteContact(ctx, id)
}

// ListTrash returns every soft-deleted contact.
func (c *contactService) ListTrash(ctx context.Context) ([]models.Contact, error) {
	return c.contactRepository.ListDeletedContacts(ctx)
}

// RestoreContact brings a trashed contact back.
func (c *contactService) RestoreContact(ctx context.Context, id int64) error {
	return c.contactRepository.RestoreContact(ctx, id)
}

// PurgeContact permanently removes a trashed contact and all its
// satellite rows.
func (c *contactService) PurgeContact(ctx context.Context, id int64) error {
	return c.contactRepository.PurgeContact(ctx, id)
}

// contactFromRequest maps a validated request onto the persistence model,
// filling the schema defaults for fields the request left unset.
func contactFromRequest(req models.ContactRequest) models.Contact {
	contact := models.Contact{
		Name:              req.Name,
		Type:              req.Type,
		RelationshipLevel: req.RelationshipLevel,
		Gender:            req.Gender,
		Birthday:          req.Birthday,
		Phone:             req.Phone,
		Email:             req.Email,
		Company:           req.Company,
		Position:          req.Position,
		Address:           req.Address,
		Tags:              req.Tags,
		Notes:             req.Notes,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ImportanceScore:   req.ImportanceScore,
	}

	if contact.RelationshipLevel == "" {
		contact.RelationshipLevel = defaultRelationshipLevel
	}
	if contact.Gender == "" {
		contact.Gender = defaultGender
	}
	if contact.ImportanceScore == 0 {
		contact.ImportanceScore = defaultImportanceScore
	}

	return contact
}
