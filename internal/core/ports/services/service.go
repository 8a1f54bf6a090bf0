package services

// ServiceContainer holds instances of all the application services.
type ServiceContainer struct {
	Account AccountSvcFacade
	Period  FiscalPeriodSvcFacade
	Posting PostingSvcFacade
	Balance BalanceSvcFacade
}
