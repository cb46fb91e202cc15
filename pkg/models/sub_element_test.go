package models_test

import (
	"time"

	"github.com/contract-ledger/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSubElementDefaults() {
	c := suite.createTestContract(models.Contract{})

	s := models.SubElement{
		ContractID: c.ID,
		Name:       " Termo aditivo 01 ",
		Kind:       models.KindAddition,
		Date:       time.Date(2024, 5, 2, 12, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
		Amount:     decimal.NewNullDecimal(decimal.RequireFromString("123.45")),
	}
	suite.Require().Nil(suite.db.Create(&s).Error)

	var stored models.SubElement
	suite.Require().Nil(suite.db.First(&stored, s.ID).Error)

	suite.Assert().Equal("Termo aditivo 01", stored.Name)
	suite.Assert().Equal(models.SubElementPending, stored.Status)
	suite.Assert().Equal(time.UTC, stored.Date.Location())
	suite.Assert().True(stored.Date.Equal(s.Date))
	suite.Assert().True(stored.Amount.Valid)
	suite.Assert().Equal("123.45", stored.Amount.Decimal.StringFixed(2))
}

func (suite *TestSuiteStandard) TestSubElementWithoutAmount() {
	c := suite.createTestContract(models.Contract{})

	s := models.SubElement{
		ContractID: c.ID,
		Name:       "ART de execução",
		Kind:       models.KindDocument,
		Date:       time.Now(),
		File:       "uploads/art.pdf",
	}
	suite.Require().Nil(suite.db.Create(&s).Error)

	var stored models.SubElement
	suite.Require().Nil(suite.db.First(&stored, s.ID).Error)
	suite.Assert().False(stored.Amount.Valid)
	suite.Assert().Equal("uploads/art.pdf", stored.File)
}

func (suite *TestSuiteStandard) TestSubElementValidate() {
	valid := models.SubElement{Name: "Medição", Kind: models.KindMeasurement, Date: time.Now()}
	suite.Assert().Nil(valid.Validate())

	tests := []struct {
		name   string
		modify func(*models.SubElement)
		err    error
	}{
		{"Name", func(s *models.SubElement) { s.Name = "" }, models.ErrSubElementNameEmpty},
		{"Date", func(s *models.SubElement) { s.Date = time.Time{} }, models.ErrSubElementDateEmpty},
		{"Kind", func(s *models.SubElement) { s.Kind = "medição" }, models.ErrSubElementKindInvalid},
		{"Status", func(s *models.SubElement) { s.Status = "Aberto" }, models.ErrSubElementStatusInvalid},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			s := valid
			tt.modify(&s)
			suite.Assert().ErrorIs(s.Validate(), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestSubElementKinds() {
	for _, k := range []models.SubElementKind{models.KindMeasurement, models.KindAddition, models.KindSuppression, models.KindDocument, models.KindOther} {
		suite.Assert().True(k.Valid(), "%s must be valid", k)
	}

	suite.Assert().False(models.SubElementKind("Pagamento").Valid())
	suite.Assert().False(models.SubElementStatus("").Valid())
}
