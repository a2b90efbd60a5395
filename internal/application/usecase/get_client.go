package usecase

import (
	"context"
	"fmt"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/port"
)

// GetClientUseCase retrieves clients for display.
type GetClientUseCase struct {
	clientRepo port.ClientRepository
}

// NewGetClientUseCase wires dependencies.
func NewGetClientUseCase(clientRepo port.ClientRepository) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo}
}

// Execute retrieves one client by cédula.
func (uc *GetClientUseCase) Execute(ctx context.Context, nationalID string) (dto.ClientResponse, error) {
	client, err := uc.clientRepo.FindByNationalID(ctx, nationalID)
	if err != nil {
		return dto.ClientResponse{}, fmt.Errorf("find client: %w", err)
	}
	return dto.FromClient(client), nil
}

// List retrieves all clients.
func (uc *GetClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := uc.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.FromClient(c))
	}
	return out, nil
}
