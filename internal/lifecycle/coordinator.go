// internal/lifecycle/coordinator.go
package lifecycle

import (
	"context"
	"fmt"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/email"
	"github.com/adoptyme/backend/internal/email/mailer"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
)

// Coordinator owns every cross-aggregate reaction. Each handler opens
// its own scope, so a handler failure never touches the transaction
// that emitted the event.
type Coordinator struct {
	manager       *uow.Manager
	applications  *service.AdoptionApplicationService
	pets          *service.PetService
	animals       repository.AdoptionAnimalRepositoryIface
	profiles      repository.ProfileRepositoryIface
	accounts      repository.AccountRepositoryIface
	organizations repository.OrganizationRepositoryIface
	emailGateway  email.Gateway
}

func NewCoordinator(
	manager *uow.Manager,
	applications *service.AdoptionApplicationService,
	pets *service.PetService,
	animals repository.AdoptionAnimalRepositoryIface,
	profiles repository.ProfileRepositoryIface,
	accounts repository.AccountRepositoryIface,
	organizations repository.OrganizationRepositoryIface,
	emailGateway email.Gateway,
) *Coordinator {
	return &Coordinator{
		manager:       manager,
		applications:  applications,
		pets:          pets,
		animals:       animals,
		profiles:      profiles,
		accounts:      accounts,
		organizations: organizations,
		emailGateway:  emailGateway,
	}
}

// Register wires the coordinator's handlers. Registration order is the
// execution order for handlers of the same event.
func (c *Coordinator) Register(bus *uow.Bus) {
	bus.On(domain.AccountVerified{}.EventName(), c.onAccountVerified)
	bus.On(domain.OrganizationVerified{}.EventName(), c.onOrganizationVerified)
	bus.On(domain.AdoptionAnimalDeleted{}.EventName(), c.onAnimalDeleted)
	bus.On(domain.ApplicationStateUpdated{}.EventName(), c.onApplicationStateUpdated)
	bus.On(domain.AnimalAdopted{}.EventName(), c.onAnimalAdopted)
	bus.On(domain.PetSightingReported{}.EventName(), c.onPetSighting)
}

func (c *Coordinator) onAccountVerified(ctx context.Context, event domain.Event) error {
	verified, ok := event.(domain.AccountVerified)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return mailer.SendWelcomeEmail(c.emailGateway, verified.Email)
}

func (c *Coordinator) onOrganizationVerified(ctx context.Context, event domain.Event) error {
	verified, ok := event.(domain.OrganizationVerified)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return c.manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		org, err := c.organizations.FindByID(scope.Session(), verified.OrganizationID)
		if err != nil {
			return err
		}
		admin, err := c.profiles.FindAdminByOrganization(scope.Session(), org.ID)
		if err != nil {
			return err
		}
		account, err := c.accounts.FindByID(scope.Session(), admin.AccountID)
		if err != nil {
			return err
		}
		return mailer.SendOrganizationVerifiedEmail(c.emailGateway, account.Email, mailer.OrganizationVerifiedData{
			AdminName:        admin.FirstName,
			OrganizationName: org.Name,
		})
	})
}

// onAnimalDeleted rejects every application still open for the removed
// animal. No events are emitted, so nothing cascades further.
func (c *Coordinator) onAnimalDeleted(ctx context.Context, event domain.Event) error {
	deleted, ok := event.(domain.AdoptionAnimalDeleted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return c.manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		return c.applications.RejectAllForAnimal(ctx, scope, deleted.AnimalID)
	})
}

// onApplicationStateUpdated mails the adopter about the decision. The
// sender shows as the organization when the decider belongs to one,
// otherwise as the decider's first name.
func (c *Coordinator) onApplicationStateUpdated(ctx context.Context, event domain.Event) error {
	updated, ok := event.(domain.ApplicationStateUpdated)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return c.manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		adopter, err := c.profiles.FindByID(scope.Session(), updated.AdopterProfileID)
		if err != nil {
			return err
		}
		account, err := c.accounts.FindByID(scope.Session(), adopter.AccountID())
		if err != nil {
			return err
		}
		animal, err := c.animals.FindByID(scope.Session(), updated.AnimalID, true)
		if err != nil {
			return err
		}

		senderName, err := c.senderName(scope, updated)
		if err != nil {
			return err
		}
		return mailer.SendApplicationOutcomeEmail(c.emailGateway, account.Email, mailer.ApplicationOutcomeData{
			AdopterName: adopter.FirstName(),
			AnimalName:  animal.Name,
			SenderName:  senderName,
			Accepted:    updated.NewState == string(model.ApplicationAccepted),
		})
	})
}

func (c *Coordinator) senderName(scope *uow.Scope, updated domain.ApplicationStateUpdated) (string, error) {
	decider, err := c.profiles.FindByID(scope.Session(), updated.DeciderProfileID)
	if err != nil {
		return "", err
	}
	if decider.IsPersonal() {
		return decider.FirstName(), nil
	}
	org, err := c.organizations.FindByID(scope.Session(), decider.Organizational.OrganizationID)
	if err != nil {
		return "", err
	}
	return org.Name, nil
}

// onAnimalAdopted materializes the adopted animal as the adopter's pet.
// The pet service call is idempotent on the source animal, so a retried
// event does not duplicate the pet.
func (c *Coordinator) onAnimalAdopted(ctx context.Context, event domain.Event) error {
	adopted, ok := event.(domain.AnimalAdopted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return c.manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		animal, err := c.animals.FindByID(scope.Session(), adopted.AnimalID, true)
		if err != nil {
			return err
		}
		_, err = c.pets.CreateFromAdoption(ctx, scope, animal, adopted.AdopterProfileID)
		return err
	})
}

func (c *Coordinator) onPetSighting(ctx context.Context, event domain.Event) error {
	sighting, ok := event.(domain.PetSightingReported)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return c.manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		pet, err := c.pets.Get(ctx, scope, sighting.PetID)
		if err != nil {
			return err
		}
		owner, err := c.profiles.FindByID(scope.Session(), pet.OwnerProfileID)
		if err != nil {
			return err
		}
		account, err := c.accounts.FindByID(scope.Session(), owner.AccountID())
		if err != nil {
			return err
		}
		return mailer.SendPetSightingEmail(c.emailGateway, account.Email, mailer.PetSightingData{
			OwnerName: owner.FirstName(),
			PetName:   pet.Name,
			Lat:       sighting.Lat,
			Lon:       sighting.Lon,
		})
	})
}
