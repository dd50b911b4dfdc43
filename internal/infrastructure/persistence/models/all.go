package models

// All returns every model, in dependency order, for AutoMigrate in tests and tools
func All() []any {
	return []any{
		&TenantModel{},
		&UserModel{},
		&AuditEntryModel{},
		&IntegrationModel{},
		&SyncLogModel{},
		&VendorModel{},
		&PurchaseOrderModel{},
		&ContractModel{},
		&RFPModel{},
		&RiskAssessmentModel{},
		&PenaltyModel{},
		&TicketModel{},
		&SurveyModel{},
		&SurveyResponseModel{},
	}
}
