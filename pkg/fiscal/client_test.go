package fiscal

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integrarural/config"
	"integrarural/entities"
	"integrarural/pkg/apperr"
)

func sandboxClient() Submitter {
	return NewClient(config.AppConfig{
		FocusEnv:   config.EnvSandbox,
		FocusToken: "test-token",
	})
}

func TestSubmitSuccess(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://homologacao.focusnfe.com.br/v2/nfe",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Token token=test-token", req.Header.Get("Authorization"))
			assert.Equal(t, "hml_ab12cd34", req.URL.Query().Get("ref"))
			return httpmock.NewJsonResponse(202, map[string]any{
				"status": "processando_autorizacao",
			})
		})

	res, err := sandboxClient().Submit(context.Background(), "hml_ab12cd34", &Payload{Ref: "hml_ab12cd34"})
	require.NoError(t, err)
	assert.Equal(t, "processando_autorizacao", res.Status)
}

func TestSubmitEmbeddedErrorsRejected(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://homologacao.focusnfe.com.br/v2/nfe",
		httpmock.NewStringResponder(200, `{"status":"erro_autorizacao","erros":[{"codigo":"778","mensagem":"CFOP invalido"}]}`))

	_, err := sandboxClient().Submit(context.Background(), "hml_ab12cd34", &Payload{})
	var se *apperr.SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Detail, "CFOP invalido")
}

func TestSubmitHTTPErrorStatus(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", "https://homologacao.focusnfe.com.br/v2/nfe",
		httpmock.NewStringResponder(422, `{"mensagem_sefaz":"Rejeicao: IE do destinatario invalida"}`))

	_, err := sandboxClient().Submit(context.Background(), "hml_ab12cd34", &Payload{})
	var se *apperr.SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Detail, "422")
	assert.Contains(t, se.Detail, "IE do destinatario invalida")
}

func TestSubmitNetworkFailure(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	// No responder registered: transport errors out.

	_, err := sandboxClient().Submit(context.Background(), "hml_ab12cd34", &Payload{})
	var se *apperr.SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Detail, "unreachable")
}

func TestQueryAuthorized(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://homologacao.focusnfe.com.br/v2/nfe/hml_ab12cd34",
		httpmock.NewStringResponder(200, `{
			"status": "autorizado",
			"protocolo": "135230000000001",
			"chave_nfe": "NFe51230812345678000190550010000000011000000017",
			"caminho_xml_nota_fiscal": "/arquivos/nfe.xml",
			"caminho_danfe": "/arquivos/danfe.pdf"
		}`))

	res, err := sandboxClient().Query(context.Background(), "hml_ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, "autorizado", res.Status)
	assert.Equal(t, "135230000000001", res.Protocol)
	assert.Equal(t, "51230812345678000190550010000000011000000017", StripKeyPrefix(res.DocumentKey))
}

func TestMapStatusFailClosed(t *testing.T) {
	assert.Equal(t, entities.NFeStatusAuthorized, MapStatus("autorizado"))
	assert.Equal(t, entities.NFeStatusProcessing, MapStatus("processando"))
	assert.Equal(t, entities.NFeStatusProcessing, MapStatus("processando_autorizacao"))
	assert.Equal(t, entities.NFeStatusCancelled, MapStatus("cancelado"))
	assert.Equal(t, entities.NFeStatusError, MapStatus("erro_autorizacao"))
	assert.Equal(t, entities.NFeStatusError, MapStatus("denegado"))

	// Anything unknown is never treated as authorized.
	assert.Equal(t, entities.NFeStatusError, MapStatus("autorizado_parcial"))
	assert.Equal(t, entities.NFeStatusError, MapStatus(""))
}

func TestStripKeyPrefix(t *testing.T) {
	assert.Equal(t, "123", StripKeyPrefix("NFe123"))
	assert.Equal(t, "123", StripKeyPrefix("123"))
	assert.Empty(t, StripKeyPrefix(""))
}
