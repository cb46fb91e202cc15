package models_test

import (
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestContractDefaults() {
	c := suite.createTestContract(models.Contract{
		Number:        "  CT-001  ",
		ContractValue: decimal.RequireFromString("1500.50"),
		MeasuredValue: decimal.RequireFromString("999.00"),
	})

	var stored models.Contract
	suite.Require().Nil(suite.db.First(&stored, c.ID).Error)

	suite.Assert().Equal("CT-001", stored.Number)
	suite.Assert().Equal(models.ContractStatusActive, stored.Status)
	suite.Assert().Equal(models.ReadjustmentOnTrack, stored.ReadjustmentStatus)
	suite.Assert().Equal(models.ExecutionInProgress, stored.ExecutionStatus)
	suite.Assert().Equal("1500.50", stored.ContractValue.StringFixed(2))
	suite.Assert().True(stored.MeasuredValue.IsZero(), "The measured value must be zero on creation")
}

func (suite *TestSuiteStandard) TestContractValidation() {
	tests := []struct {
		name     string
		contract models.Contract
		err      error
	}{
		{"No number", models.Contract{ContractingParty: "A", ContractedParty: "B", Scope: "C"}, models.ErrContractNumberEmpty},
		{"No contracting party", models.Contract{Number: "1", ContractedParty: "B", Scope: "C"}, models.ErrContractingPartyEmpty},
		{"No contracted party", models.Contract{Number: "1", ContractingParty: "A", Scope: "C"}, models.ErrContractedPartyEmpty},
		{"No scope", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "  "}, models.ErrContractScopeEmpty},
		{"Invalid status", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "C", Status: "Cancelado"}, models.ErrContractStatusInvalid},
		{"Invalid readjustment status", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "C", ReadjustmentStatus: "Ok"}, models.ErrReadjustmentStatusInvalid},
		{"Invalid execution status", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "C", ExecutionStatus: "Parado"}, models.ErrExecutionStatusInvalid},
		{"Negative value", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "C", ContractValue: decimal.NewFromInt(-1)}, models.ErrContractValueNegative},
		{"Fractional cents", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "C", ContractValue: decimal.RequireFromString("0.125")}, models.ErrAmountPrecision},
		{"Value too large", models.Contract{Number: "1", ContractingParty: "A", ContractedParty: "B", Scope: "C", ContractValue: decimal.RequireFromString("10000000000000.00")}, models.ErrAmountTooLarge},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := suite.db.Create(&tt.contract).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestContractSelf() {
	suite.Assert().Equal("Contract", models.Contract{}.Self())
	suite.Assert().Equal("contratos", models.Contract{}.TableName())
}
