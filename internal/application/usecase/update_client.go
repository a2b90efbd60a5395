package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
)

// UpdateClientUseCase edits a client's contact fields. The cédula and names
// are identity data and are not editable here.
type UpdateClientUseCase struct {
	clientRepo port.ClientRepository
}

// NewUpdateClientUseCase wires dependencies.
func NewUpdateClientUseCase(clientRepo port.ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{clientRepo: clientRepo}
}

// Execute replaces the contact fields of the client.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, req dto.UpdateClientRequest) (dto.ClientResponse, error) {
	client, err := uc.clientRepo.FindByNationalID(ctx, req.NationalID)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}

	client = client.UpdateContact(model.ClientContact{
		Address:        req.Address,
		Neighborhood:   req.Neighborhood,
		City:           req.City,
		PhonePrimary:   req.PhonePrimary,
		PhoneSecondary: req.PhoneSecondary,
		ReferenceName:  req.ReferenceName,
		ReferencePhone: req.ReferencePhone,
	}, time.Now().UTC())

	if err := uc.clientRepo.Upsert(ctx, client); err != nil {
		return dto.ClientResponse{}, fmt.Errorf("save client: %w", err)
	}

	return dto.FromClient(client), nil
}
