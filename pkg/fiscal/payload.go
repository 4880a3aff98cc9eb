package fiscal

// Payload is the outbound NFe document in the fiscal authority's JSON
// shape. Typed all the way down; it is only serialized at the submission
// boundary.
type Payload struct {
	Ref            string `json:"ref"`
	EmissionDate   string `json:"data_emissao"`
	EntryExitDate  string `json:"data_entrada_saida"`
	Nature         string `json:"natureza_operacao"`
	DocumentType   string `json:"tipo_documento"`
	Destination    string `json:"local_destino"`
	Purpose        string `json:"finalidade_emissao"`
	FinalConsumer  string `json:"consumidor_final"`
	BuyerPresence  string `json:"presenca_comprador"`
	FreightCode    string `json:"modalidade_frete"`

	IssuerCNPJ      string `json:"cnpj_emitente"`
	IssuerName      string `json:"nome_emitente"`
	IssuerTradeName string `json:"nome_fantasia_emitente"`
	IssuerStreet    string `json:"logradouro_emitente"`
	IssuerNumber    string `json:"numero_emitente"`
	IssuerDistrict  string `json:"bairro_emitente"`
	IssuerCity      string `json:"municipio_emitente"`
	IssuerUF        string `json:"uf_emitente"`
	IssuerCEP       string `json:"cep_emitente"`
	IssuerIE        string `json:"inscricao_estadual_emitente"`
	IssuerIM        string `json:"inscricao_municipal_emitente,omitempty"`
	IssuerCNAE      string `json:"cnae_fiscal_emitente,omitempty"`
	IssuerTaxRegime string `json:"regime_tributario_emitente"`

	RecipientCNPJ        string `json:"cnpj_destinatario,omitempty"`
	RecipientCPF         string `json:"cpf_destinatario,omitempty"`
	RecipientIEIndicator string `json:"indicador_inscricao_estadual_destinatario,omitempty"`
	RecipientIE          string `json:"inscricao_estadual_destinatario,omitempty"`
	RecipientName        string `json:"nome_destinatario"`
	RecipientStreet      string `json:"logradouro_destinatario,omitempty"`
	RecipientNumber      string `json:"numero_destinatario,omitempty"`
	RecipientDistrict    string `json:"bairro_destinatario,omitempty"`
	RecipientCity        string `json:"municipio_destinatario,omitempty"`
	RecipientUF          string `json:"uf_destinatario,omitempty"`
	RecipientCEP         string `json:"cep_destinatario,omitempty"`

	Items []Item `json:"items"`

	TransporterName string `json:"nome_transportador,omitempty"`
	VehiclePlate    string `json:"placa_veiculo,omitempty"`
	VehicleUF       string `json:"uf_veiculo,omitempty"`

	GrossWeight string   `json:"peso_bruto,omitempty"`
	NetWeight   string   `json:"peso_liquido,omitempty"`
	Volumes     []Volume `json:"volumes,omitempty"`

	Payments []PaymentEntry `json:"formas_pagamento"`
}

type Item struct {
	Number        string `json:"numero_item"`
	ProductCode   string `json:"codigo_produto"`
	Description   string `json:"descricao"`
	CFOP          string `json:"cfop"`
	TradeUnit     string `json:"unidade_comercial"`
	TradeQty      string `json:"quantidade_comercial"`
	TradeUnitVal  string `json:"valor_unitario_comercial"`
	TaxUnit       string `json:"unidade_tributavel"`
	TaxQty        string `json:"quantidade_tributavel"`
	TaxUnitVal    string `json:"valor_unitario_tributavel"`
	NCM           string `json:"codigo_ncm"`
	Total         string `json:"valor_total"`
	ICMSSituation string `json:"icms_situacao_tributaria"`
	ICMSOrigin    string `json:"icms_origem"`
	PISSituation  string `json:"pis_situacao_tributaria"`
	COFINSSit     string `json:"cofins_situacao_tributaria"`
}

type Volume struct {
	Quantity    string `json:"quantidade"`
	Kind        string `json:"especie"`
	GrossWeight string `json:"peso_bruto"`
	NetWeight   string `json:"peso_liquido"`
}

type PaymentEntry struct {
	Code string `json:"forma_pagamento"`
}

// SubmissionResult is the authority's response shape shared by submit and
// query. Erros marks failure even when the HTTP status is 2xx.
type SubmissionResult struct {
	Status      string `json:"status"`
	Protocol    string `json:"protocolo"`
	DocumentKey string `json:"chave_nfe"`
	XMLURL      string `json:"caminho_xml_nota_fiscal"`
	DANFEURL    string `json:"caminho_danfe"`
	StatusSEFAZ string `json:"status_sefaz,omitempty"`
	Message     string `json:"mensagem_sefaz,omitempty"`
	Errors      []struct {
		Code    string `json:"codigo"`
		Message string `json:"mensagem"`
	} `json:"erros,omitempty"`
}
