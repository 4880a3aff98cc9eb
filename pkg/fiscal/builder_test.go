package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrarural/config"
	"integrarural/entities"
	"integrarural/pkg/apperr"
)

var testNow = time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)

func testFarm() *entities.Farm {
	return &entities.Farm{
		ID:        1,
		Name:      "Fazenda Boa Vista",
		CNPJ:      "12.345.678/0001-90",
		StateIE:   "123456789",
		Street:    "Rodovia BR-163 km 12",
		Number:    "S/N",
		District:  "Zona Rural",
		City:      "Sorriso",
		UF:        "MT",
		CEP:       "78890-000",
		TaxRegime: entities.RegimeNormal,
	}
}

func testWarehouse(uf string) *entities.Warehouse {
	return &entities.Warehouse{
		ID:       2,
		Name:     "Armazem Central",
		CNPJ:     "98.765.432/0001-10",
		StateIE:  "987654321",
		Street:   "Av Industrial",
		Number:   "1000",
		District: "Distrito Industrial",
		City:     "Rondonopolis",
		UF:       uf,
		CEP:      "78700-000",
	}
}

func testLoad(op string) *entities.Load {
	return &entities.Load{
		ID:          7,
		Truck:       "ABC-1D23",
		Driver:      "Jose da Silva",
		Product:     "Soja",
		Quantity:    35,
		Unit:        "ton",
		Operation:   op,
		ScheduledAt: testNow,
		FreightCode: FreightIssuer,
	}
}

func TestNewBuilderSandboxByEnvironment(t *testing.T) {
	assert.True(t, NewBuilder(config.EnvSandbox).Sandbox())
	// Anything but an explicit production environment stays in sandbox.
	assert.True(t, NewBuilder("").Sandbox())
	assert.False(t, NewBuilder(config.EnvProduction).Sandbox())
}

func TestBuildConsignmentIntrastateCFOP(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)
	p, err := b.Build(testLoad(entities.OpConsignment), testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, CFOPConsignmentIntra, p.Items[0].CFOP)
	assert.Equal(t, "1", p.Destination)
}

func TestBuildConsignmentInterstateCFOP(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)
	load := testLoad(entities.OpConsignment)
	// CFOP override must be ignored for consignment.
	load.CFOPOverride = "5101"
	p, err := b.Build(load, testFarm(), testWarehouse("GO"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Equal(t, CFOPConsignmentInter, p.Items[0].CFOP)
	assert.Equal(t, "2", p.Destination)
}

func TestBuildConsignmentFixedNatureAndTaxes(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)
	load := testLoad(entities.OpConsignment)
	load.NatureOverride = "QUALQUER OUTRA COISA"
	p, err := b.Build(load, testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)

	assert.Equal(t, NatureConsignment, p.Nature)
	assert.Equal(t, "41", p.Items[0].ICMSSituation)
	assert.Equal(t, "08", p.Items[0].PISSituation)
	assert.Equal(t, "08", p.Items[0].COFINSSit)
	require.Len(t, p.Payments, 1)
	assert.Equal(t, PaymentNone, p.Payments[0].Code)
}

func TestBuildSaleHonorsOverridesAndFarmDefaults(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)

	load := testLoad(entities.OpSale)
	load.CFOPOverride = "5102"
	load.NatureOverride = "VENDA FORA DO ESTABELECIMENTO"
	p, err := b.Build(load, testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Equal(t, "5102", p.Items[0].CFOP)
	assert.Equal(t, "VENDA FORA DO ESTABELECIMENTO", p.Nature)
	assert.Equal(t, PaymentOther, p.Payments[0].Code)

	farm := testFarm()
	farm.DefaultCFOP = "5103"
	farm.DefaultNature = "VENDA CONFORME CADASTRO"
	p, err = b.Build(testLoad(entities.OpSale), farm, testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Equal(t, "5103", p.Items[0].CFOP)
	assert.Equal(t, "VENDA CONFORME CADASTRO", p.Nature)

	p, err = b.Build(testLoad(entities.OpSale), testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Equal(t, CFOPSaleFallback, p.Items[0].CFOP)
	assert.Equal(t, NatureFallback, p.Nature)
	assert.Equal(t, "40", p.Items[0].ICMSSituation)
}

func TestBuildSandboxSyntheticIdentifiers(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)
	p, err := b.Build(testLoad(entities.OpSale), testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)

	assert.Equal(t, SandboxIssuerCNPJ, p.IssuerCNPJ)
	assert.Equal(t, SandboxName, p.IssuerName)
	assert.Equal(t, IEExempt, p.IssuerIE)
	assert.Equal(t, SandboxRecipientCNPJ, p.RecipientCNPJ)
	assert.Equal(t, SandboxName, p.RecipientName)
	assert.Equal(t, "9", p.RecipientIEIndicator)
	assert.Equal(t, "1", p.FinalConsumer)
	assert.Equal(t, SandboxItemText, p.Items[0].Description)
}

func TestBuildProductionRejectsMissingMandatory(t *testing.T) {
	b := NewBuilder(config.EnvProduction)
	farm := testFarm()
	farm.CNPJ = ""
	farm.CEP = ""

	_, err := b.Build(testLoad(entities.OpSale), farm, testWarehouse("MT"), "prod_ab12cd34", testNow)
	var fde *apperr.FiscalDataError
	require.ErrorAs(t, err, &fde)
	assert.Contains(t, fde.Missing, "cnpj_emitente")
	assert.Contains(t, fde.Missing, "cep_emitente")
}

func TestBuildProductionPassesWithCompleteData(t *testing.T) {
	b := NewBuilder(config.EnvProduction)
	p, err := b.Build(testLoad(entities.OpSale), testFarm(), testWarehouse("MT"), "prod_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Equal(t, "12345678000190", p.IssuerCNPJ)
	assert.Equal(t, "98765432000110", p.RecipientCNPJ)
	assert.Equal(t, "1", p.RecipientIEIndicator)
}

func TestBuildInformalRecipientForcesFinalConsumer(t *testing.T) {
	b := NewBuilder(config.EnvProduction)
	wh := testWarehouse("MT")
	wh.StateIE = IEExempt
	p, err := b.Build(testLoad(entities.OpSale), testFarm(), wh, "prod_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Equal(t, "9", p.RecipientIEIndicator)
	assert.Empty(t, p.RecipientIE)
	assert.Equal(t, "1", p.FinalConsumer)
}

func TestBuildTransportOmittedWithoutFreight(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)

	load := testLoad(entities.OpSale)
	load.FreightCode = FreightNone
	p, err := b.Build(load, testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Empty(t, p.TransporterName)
	assert.Empty(t, p.VehiclePlate)
	assert.Empty(t, p.Volumes)
	assert.Empty(t, p.GrossWeight)

	load = testLoad(entities.OpSale)
	load.SeparateTransportDoc = true
	p, err = b.Build(load, testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)
	assert.Empty(t, p.TransporterName)
	assert.Empty(t, p.Volumes)
}

func TestBuildTransportAndVolumes(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)
	p, err := b.Build(testLoad(entities.OpSale), testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)

	assert.Equal(t, "Jose da Silva", p.TransporterName)
	assert.Equal(t, "ABC1D23", p.VehiclePlate)
	assert.Equal(t, "MT", p.VehicleUF)
	require.Len(t, p.Volumes, 1)
	// 35 t -> 35000 kg
	assert.Equal(t, "35000.00", p.Volumes[0].GrossWeight)
	assert.Equal(t, "GRANEL", p.Volumes[0].Kind)
}

func TestBuildItemQuantitiesAndPrice(t *testing.T) {
	b := NewBuilder(config.EnvSandbox)
	load := testLoad(entities.OpSale)
	price := 1520.50
	load.UnitPrice = &price
	p, err := b.Build(load, testFarm(), testWarehouse("MT"), "hml_ab12cd34", testNow)
	require.NoError(t, err)

	item := p.Items[0]
	assert.Equal(t, "TON", item.TradeUnit)
	assert.Equal(t, "35.0000", item.TradeQty)
	assert.Equal(t, "1520.50", item.TradeUnitVal)
	assert.Equal(t, "53217.50", item.Total)
	assert.Equal(t, "1201.90.00", item.NCM)
}

func TestNCMKeywordTable(t *testing.T) {
	cases := map[string]string{
		"Soja":           "1201.90.00",
		"soja em graos":  "1201.90.00",
		"Milho Safrinha": "1005.90.10",
		"Cana de Acucar": "1212.99.90",
		"Trigo":          "1001.99.00",
		"Arroz irrigado": "1006.30.21",
		"Feijao carioca": "0713.32.00",
		"Sorgo":          ncmFallback,
	}
	for product, want := range cases {
		assert.Equal(t, want, ncmFor(product), product)
	}
}

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, "TON", unitCode("Ton"))
	assert.Equal(t, "KG", unitCode("kg"))
	assert.Equal(t, "SAC", unitCode("sacas"))
	assert.Equal(t, "UN", unitCode("caixa"))

	assert.Equal(t, 35000.0, WeightKg(35, "ton"))
	assert.Equal(t, 6000.0, WeightKg(100, "sc"))
	assert.Equal(t, 1234.0, WeightKg(1234, "kg"))
}

func TestCleanPlate(t *testing.T) {
	assert.Equal(t, "ABC1D23", cleanPlate("abc-1d23"))
	assert.Equal(t, "ABCD1234", cleanPlate("AB CD-12.345"))
	assert.Empty(t, cleanPlate("---"))
}
