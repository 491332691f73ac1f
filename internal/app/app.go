// internal/app/app.go

// Package app assembles the application. Wiring runs in fixed phases
// (views, repositories, services, use cases, handlers) and, inside each
// phase, in context order: auth, social, adoptions, pets, donations,
// reports. Constructors only resolve what an earlier phase registered,
// so a wiring mistake fails at startup, loudly.
package app

import (
	"context"
	"net/http"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/config"
	"github.com/adoptyme/backend/internal/container"
	"github.com/adoptyme/backend/internal/email"
	"github.com/adoptyme/backend/internal/handler"
	"github.com/adoptyme/backend/internal/lifecycle"
	"github.com/adoptyme/backend/internal/payment"
	"github.com/adoptyme/backend/internal/qr"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/storage"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/adoptyme/backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Container *container.Container
	Bus       *uow.Bus
	Manager   *uow.Manager
}

// New wires the full application over the given database handle.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*App, error) {
	c := container.New()

	bus := uow.NewBus()
	manager := uow.NewManager(uow.NewGormSessionFactory(db), bus)

	a := &App{Config: cfg, Container: c, Bus: bus, Manager: manager}

	if err := a.registerInfrastructure(ctx); err != nil {
		return nil, err
	}
	a.registerViews()
	a.registerRepositories()
	a.registerServices()
	a.registerUseCases()
	a.registerHandlers()

	return a, nil
}

func (a *App) registerInfrastructure(ctx context.Context) error {
	cfg := a.Config

	container.Register(a.Container, cfg)
	container.Register(a.Container, a.Manager)
	container.Register(a.Container, a.Bus)
	container.Register(a.Container, auth.NewPasswordHasher())
	container.Register(a.Container, auth.NewTokenManager(
		cfg.Crypto.TokenSecret, cfg.Crypto.AccessExpiry, cfg.Crypto.LinkExpiry,
	))
	container.Register(a.Container, qr.NewGenerator())

	var gateway email.Gateway
	if cfg.Email.Env == "sendgrid" {
		gateway = email.NewSendgridGateway(cfg.Email.SendgridAPIKey, cfg.Email.From)
	} else {
		gateway = email.NewCaptureGateway()
	}
	container.Register(a.Container, gateway)

	var store storage.Store
	if cfg.S3.Fake {
		store = storage.NewMemoryStore()
	} else {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKey, cfg.S3.Secret)
		if err != nil {
			return err
		}
		store = s3Store
	}
	container.Register(a.Container, store)

	var payments payment.Gateway = payment.NewMercadoPagoClient(
		cfg.MercadoPago.BaseURL,
		cfg.MercadoPago.ClientID,
		cfg.MercadoPago.ClientSecret,
		cfg.URL.Backend+"/api/mercadopago/callback",
		cfg.MercadoPago.Timeout,
	)
	container.Register(a.Container, payments)

	return nil
}

// registerViews binds the read-model projections; they have no
// dependencies beyond the store session.
func (a *App) registerViews() {
	var reports repository.ReportRepositoryIface = repository.NewReportRepository()
	container.Register(a.Container, reports)
}

func (a *App) registerRepositories() {
	c := a.Container
	container.Register[repository.AccountRepositoryIface](c, repository.NewAccountRepository())
	container.Register[repository.ProfileRepositoryIface](c, repository.NewProfileRepository())
	container.Register[repository.OrganizationRepositoryIface](c, repository.NewOrganizationRepository())
	container.Register[repository.AdoptionAnimalRepositoryIface](c, repository.NewAdoptionAnimalRepository())
	container.Register[repository.AdoptionApplicationRepositoryIface](c, repository.NewAdoptionApplicationRepository())
	container.Register[repository.AdoptionRepositoryIface](c, repository.NewAdoptionRepository())
	container.Register[repository.PetRepositoryIface](c, repository.NewPetRepository())
	container.Register[repository.PetSightRepositoryIface](c, repository.NewPetSightRepository())
	container.Register[repository.DonationRepositoryIface](c, repository.NewDonationRepository())
	container.Register[repository.MpTransactionRepositoryIface](c, repository.NewMpTransactionRepository())
}

func (a *App) registerServices() {
	c := a.Container

	// auth
	container.Register(c, service.NewAccountService(
		container.Resolve[repository.AccountRepositoryIface](c),
		container.Resolve[*auth.PasswordHasher](c),
		container.Resolve[*auth.TokenManager](c),
		container.Resolve[email.Gateway](c),
		a.Config,
	))

	// social
	profileSvc := service.NewProfileService(
		container.Resolve[repository.ProfileRepositoryIface](c),
	)
	container.Register(c, profileSvc)
	container.Register(c, service.NewOrganizationService(
		container.Resolve[repository.OrganizationRepositoryIface](c),
		container.Resolve[repository.ProfileRepositoryIface](c),
		profileSvc,
		container.Resolve[payment.Gateway](c),
		a.Config.Staff.StaffEmail,
	))

	// adoptions
	container.Register(c, service.NewAdoptionAnimalService(
		container.Resolve[repository.AdoptionAnimalRepositoryIface](c),
	))
	container.Register(c, service.NewAdoptionApplicationService(
		container.Resolve[repository.AdoptionApplicationRepositoryIface](c),
		container.Resolve[repository.AdoptionRepositoryIface](c),
		container.Resolve[repository.AdoptionAnimalRepositoryIface](c),
	))

	// pets
	container.Register(c, service.NewPetService(
		container.Resolve[repository.PetRepositoryIface](c),
		container.Resolve[repository.PetSightRepositoryIface](c),
		container.Resolve[storage.Store](c),
		container.Resolve[*qr.Generator](c),
		a.Config.URL.Backend,
	))
	container.Register(c, service.NewPetSightService(
		container.Resolve[repository.PetSightRepositoryIface](c),
		container.Resolve[repository.PetRepositoryIface](c),
	))

	// donations
	container.Register(c, service.NewDonationService(
		container.Resolve[repository.DonationRepositoryIface](c),
		container.Resolve[repository.MpTransactionRepositoryIface](c),
		container.Resolve[repository.OrganizationRepositoryIface](c),
	))

	// reports
	container.Register(c, service.NewReportService(
		container.Resolve[repository.ReportRepositoryIface](c),
	))
}

func (a *App) registerUseCases() {
	c := a.Container
	manager := a.Manager
	accounts := container.Resolve[*service.AccountService](c)
	profiles := container.Resolve[*service.ProfileService](c)
	organizations := container.Resolve[*service.OrganizationService](c)
	animals := container.Resolve[*service.AdoptionAnimalService](c)
	applications := container.Resolve[*service.AdoptionApplicationService](c)
	pets := container.Resolve[*service.PetService](c)
	sights := container.Resolve[*service.PetSightService](c)
	donations := container.Resolve[*service.DonationService](c)
	reports := container.Resolve[*service.ReportService](c)
	payments := container.Resolve[payment.Gateway](c)

	// auth
	container.Register(c, &usecase.Signup{Manager: manager, Accounts: accounts})
	container.Register(c, &usecase.VerifyAccount{Manager: manager, Accounts: accounts})
	container.Register(c, &usecase.Login{Manager: manager, Accounts: accounts})
	container.Register(c, &usecase.RequestPasswordReset{Manager: manager, Accounts: accounts})
	container.Register(c, &usecase.ResetPassword{Manager: manager, Accounts: accounts})
	container.Register(c, &usecase.GetMe{Manager: manager, Accounts: accounts, Profiles: profiles})

	// social
	container.Register(c, &usecase.CreatePersonalProfile{Manager: manager, Accounts: accounts, Profiles: profiles})
	container.Register(c, &usecase.EditPersonalProfile{Manager: manager, Profiles: profiles})
	container.Register(c, &usecase.GetProfile{Manager: manager, Profiles: profiles})
	container.Register(c, &usecase.CreateOrganization{Manager: manager, Accounts: accounts, Organizations: organizations})
	container.Register(c, &usecase.JoinOrganization{Manager: manager, Accounts: accounts, Profiles: profiles})
	container.Register(c, &usecase.AcceptOrganizationMember{Manager: manager, Profiles: profiles, Organizations: organizations})
	container.Register(c, &usecase.DisableOrganizationMember{Manager: manager, Profiles: profiles, Organizations: organizations})
	container.Register(c, &usecase.VerifyOrganization{Manager: manager, Accounts: accounts, Organizations: organizations})
	container.Register(c, &usecase.LinkMerchantAccount{Manager: manager, Profiles: profiles, Organizations: organizations})
	container.Register(c, &usecase.GetOrganization{Manager: manager, Organizations: organizations})
	container.Register(c, &usecase.ListOrganizations{Manager: manager, Organizations: organizations})
	container.Register(c, &usecase.ListOrganizationMembers{Manager: manager, Profiles: profiles})

	// adoptions
	container.Register(c, &usecase.PublishAnimal{Manager: manager, Profiles: profiles, Animals: animals})
	container.Register(c, &usecase.EditAnimal{Manager: manager, Profiles: profiles, Animals: animals})
	container.Register(c, &usecase.RemoveAnimal{Manager: manager, Profiles: profiles, Animals: animals})
	container.Register(c, &usecase.GetAnimal{Manager: manager, Animals: animals})
	container.Register(c, &usecase.ListAnimals{Manager: manager, Animals: animals})
	container.Register(c, &usecase.ApplyForAdoption{Manager: manager, Profiles: profiles, Applications: applications})
	container.Register(c, &usecase.DecideApplication{Manager: manager, Profiles: profiles, Applications: applications})
	container.Register(c, &usecase.ListAnimalApplications{Manager: manager, Profiles: profiles, Applications: applications})
	container.Register(c, &usecase.ListMyApplications{Manager: manager, Profiles: profiles, Applications: applications})

	// pets
	container.Register(c, &usecase.RegisterPet{Manager: manager, Profiles: profiles, Pets: pets})
	container.Register(c, &usecase.EditPet{Manager: manager, Profiles: profiles, Pets: pets})
	container.Register(c, &usecase.RemovePet{Manager: manager, Profiles: profiles, Pets: pets})
	container.Register(c, &usecase.RegeneratePetQR{Manager: manager, Profiles: profiles, Pets: pets})
	container.Register(c, &usecase.GetPet{Manager: manager, Pets: pets})
	container.Register(c, &usecase.ListMyPets{Manager: manager, Profiles: profiles, Pets: pets})
	container.Register(c, &usecase.ReportSighting{Manager: manager, Sights: sights})
	container.Register(c, &usecase.ListSightings{Manager: manager, Sights: sights})

	// donations
	container.Register(c, &usecase.CreateCampaign{Manager: manager, Profiles: profiles, Donations: donations})
	container.Register(c, &usecase.CloseCampaign{Manager: manager, Profiles: profiles, Donations: donations})
	container.Register(c, &usecase.ListCampaigns{Manager: manager, Donations: donations})
	container.Register(c, &usecase.GetCampaign{Manager: manager, Donations: donations})
	container.Register(c, &usecase.ListDonations{Manager: manager, Profiles: profiles, Donations: donations})
	container.Register(c, &usecase.DonateToCampaign{Manager: manager, Accounts: accounts, Profiles: profiles, Donations: donations, Gateway: payments})
	container.Register(c, &usecase.CreateDonationPreference{Manager: manager, Donations: donations, Gateway: payments})

	// reports
	container.Register(c, &usecase.AdoptionsReport{Manager: manager, Reports: reports})
	container.Register(c, &usecase.DonationsReport{Manager: manager, Reports: reports})
	container.Register(c, &usecase.LostPetsReport{Manager: manager, Reports: reports})
}

// registerHandlers wires the HTTP surface and the event handlers. The
// coordinator registers last so every service it needs already exists.
func (a *App) registerHandlers() {
	c := a.Container
	tokens := container.Resolve[*auth.TokenManager](c)

	container.Register(c, handler.NewAuthHandler(
		tokens,
		container.Resolve[*usecase.Signup](c),
		container.Resolve[*usecase.VerifyAccount](c),
		container.Resolve[*usecase.Login](c),
		container.Resolve[*usecase.RequestPasswordReset](c),
		container.Resolve[*usecase.ResetPassword](c),
		container.Resolve[*usecase.GetMe](c),
	))
	container.Register(c, handler.NewSocialHandler(
		tokens,
		container.Resolve[*usecase.CreatePersonalProfile](c),
		container.Resolve[*usecase.EditPersonalProfile](c),
		container.Resolve[*usecase.GetProfile](c),
		container.Resolve[*usecase.CreateOrganization](c),
		container.Resolve[*usecase.JoinOrganization](c),
		container.Resolve[*usecase.AcceptOrganizationMember](c),
		container.Resolve[*usecase.DisableOrganizationMember](c),
		container.Resolve[*usecase.VerifyOrganization](c),
		container.Resolve[*usecase.LinkMerchantAccount](c),
		container.Resolve[*usecase.GetOrganization](c),
		container.Resolve[*usecase.ListOrganizations](c),
		container.Resolve[*usecase.ListOrganizationMembers](c),
	))
	container.Register(c, handler.NewAdoptionsHandler(
		tokens,
		container.Resolve[*usecase.PublishAnimal](c),
		container.Resolve[*usecase.EditAnimal](c),
		container.Resolve[*usecase.RemoveAnimal](c),
		container.Resolve[*usecase.GetAnimal](c),
		container.Resolve[*usecase.ListAnimals](c),
		container.Resolve[*usecase.ApplyForAdoption](c),
		container.Resolve[*usecase.DecideApplication](c),
		container.Resolve[*usecase.ListAnimalApplications](c),
		container.Resolve[*usecase.ListMyApplications](c),
	))
	container.Register(c, handler.NewPetsHandler(
		tokens,
		container.Resolve[*usecase.RegisterPet](c),
		container.Resolve[*usecase.EditPet](c),
		container.Resolve[*usecase.RemovePet](c),
		container.Resolve[*usecase.RegeneratePetQR](c),
		container.Resolve[*usecase.GetPet](c),
		container.Resolve[*usecase.ListMyPets](c),
		container.Resolve[*usecase.ReportSighting](c),
		container.Resolve[*usecase.ListSightings](c),
	))
	container.Register(c, handler.NewDonationsHandler(
		tokens,
		container.Resolve[*usecase.CreateCampaign](c),
		container.Resolve[*usecase.CloseCampaign](c),
		container.Resolve[*usecase.ListCampaigns](c),
		container.Resolve[*usecase.GetCampaign](c),
		container.Resolve[*usecase.ListDonations](c),
		container.Resolve[*usecase.DonateToCampaign](c),
		container.Resolve[*usecase.CreateDonationPreference](c),
	))
	container.Register(c, handler.NewReportsHandler(
		tokens,
		container.Resolve[*usecase.AdoptionsReport](c),
		container.Resolve[*usecase.DonationsReport](c),
		container.Resolve[*usecase.LostPetsReport](c),
	))
	container.Register(c, handler.NewFilesHandler(
		container.Resolve[storage.Store](c),
	))
	container.Register(c, handler.NewMercadoPagoHandler(a.Config.URL.Frontend))

	coordinator := lifecycle.NewCoordinator(
		a.Manager,
		container.Resolve[*service.AdoptionApplicationService](c),
		container.Resolve[*service.PetService](c),
		container.Resolve[repository.AdoptionAnimalRepositoryIface](c),
		container.Resolve[repository.ProfileRepositoryIface](c),
		container.Resolve[repository.AccountRepositoryIface](c),
		container.Resolve[repository.OrganizationRepositoryIface](c),
		container.Resolve[email.Gateway](c),
	)
	coordinator.Register(a.Bus)
	container.Register(c, coordinator)
}

// Router assembles the public HTTP surface under /api.
func (a *App) Router() http.Handler {
	c := a.Container

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{a.Config.URL.Frontend},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", container.Resolve[*handler.AuthHandler](c).Routes())
		r.Mount("/social", container.Resolve[*handler.SocialHandler](c).Routes())
		r.Mount("/adoptions", container.Resolve[*handler.AdoptionsHandler](c).Routes())
		r.Mount("/pets", container.Resolve[*handler.PetsHandler](c).Routes())
		r.Mount("/donations", container.Resolve[*handler.DonationsHandler](c).Routes())
		r.Mount("/reports", container.Resolve[*handler.ReportsHandler](c).Routes())
		r.Mount("/files", container.Resolve[*handler.FilesHandler](c).Routes())
		r.Mount("/mercadopago", container.Resolve[*handler.MercadoPagoHandler](c).Routes())
	})

	return r
}
