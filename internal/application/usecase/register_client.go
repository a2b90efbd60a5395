package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
)

// RegisterClientUseCase registers a client, merging into the existing record
// when the cédula is already known (upsert by natural key).
type RegisterClientUseCase struct {
	clientRepo port.ClientRepository
	publisher  port.EventPublisher
}

// NewRegisterClientUseCase wires dependencies.
func NewRegisterClientUseCase(clientRepo port.ClientRepository, publisher port.EventPublisher) *RegisterClientUseCase {
	return &RegisterClientUseCase{clientRepo: clientRepo, publisher: publisher}
}

// Execute creates or merges the client record.
func (uc *RegisterClientUseCase) Execute(ctx context.Context, req dto.RegisterClientRequest) (dto.ClientResponse, error) {
	now := time.Now().UTC()

	contact := model.ClientContact{
		Address:        req.Address,
		Neighborhood:   req.Neighborhood,
		City:           req.City,
		PhonePrimary:   req.PhonePrimary,
		PhoneSecondary: req.PhoneSecondary,
		ReferenceName:  req.ReferenceName,
		ReferencePhone: req.ReferencePhone,
	}

	// 1. Look up the cédula; an existing client is merged, not rejected.
	var client model.Client
	existing, err := uc.clientRepo.FindByNationalID(ctx, req.NationalID)
	switch {
	case err == nil:
		client = existing.Merge(req.GivenNames, req.Surnames, contact, now)
	case errors.Is(err, port.ErrNotFound):
		client, err = model.NewClient(req.NationalID, req.GivenNames, req.Surnames, contact, now)
		if err != nil {
			return dto.ClientResponse{}, fmt.Errorf("new client: %w", err)
		}
	default:
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}

	// 2. Persist.
	if err := uc.clientRepo.Upsert(ctx, client); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("save client: %w", err)
	}

	// 3. Publish events.
	if err := uc.publisher.Publish(ctx, client.DomainEvents()...); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.FromClient(client), nil
}
