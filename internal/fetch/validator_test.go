package fetch

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/logger"
	"github.com/motscan/motscan/internal/resilience"
	"github.com/motscan/motscan/internal/sources"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Page title</title></head><body>
<h1 class="article__title">La réforme des retraites adoptée</h1>
<span class="meta__date"><time datetime="2026-08-20T08:30:00+02:00">20 août</time></span>
<article class="article__content">
  <p>Le Parlement a adopté mardi la réforme des retraites.</p>
  <div class="inread">Lisez aussi notre dossier complet.</div>
  <p>Les syndicats annoncent une mobilisation pour la rentrée.</p>
</article>
</body></html>`

func articleSource() sources.Config {
	return sources.Config{
		Name: "lemonde",
		URL:  "https://www.lemonde.fr",
		Selectors: sources.SourceSelectors{
			Article: sources.ArticleSelectors{
				Title:         "h1.article__title",
				Body:          "article.article__content",
				PublishedTime: "time[datetime]",
				Exclude:       []string{".inread"},
			},
		},
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(srv.Close)

	v := NewHTTPContentValidator(srv.Client(), "motscan-test", logger.NewNoOp())
	doc, err := v.Fetch(t.Context(), srv.URL+"/article/retraites")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doc.StatusCode)
	assert.Equal(t, srv.URL+"/article/retraites", doc.URL)
	assert.Contains(t, string(doc.Body), "réforme des retraites")
}

func TestFetch_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	v := NewHTTPContentValidator(srv.Client(), "motscan-test", logger.NewNoOp())
	_, err := v.Fetch(t.Context(), srv.URL+"/article/disparu")

	var httpErr *resilience.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.False(t, httpErr.Retryable())
}

func TestValidateAndExtract(t *testing.T) {
	t.Parallel()

	v := NewHTTPContentValidator(nil, "motscan-test", logger.NewNoOp())
	doc := &domain.Document{
		Body:       []byte(articlePage),
		URL:        "https://www.lemonde.fr/article/retraites",
		StatusCode: http.StatusOK,
	}

	article, err := v.ValidateAndExtract(doc, articleSource())
	require.NoError(t, err)

	assert.Equal(t, "La réforme des retraites adoptée", article.Title)
	assert.Equal(t, "lemonde", article.Site)
	assert.Equal(t, doc.URL, article.URL)
	assert.Contains(t, article.Text, "Le Parlement a adopté")
	assert.Contains(t, article.Text, "mobilisation pour la rentrée")
	assert.NotContains(t, article.Text, "dossier complet", "excluded regions are removed")
	assert.Equal(t, len(articlePage), article.ContentLength)

	want := time.Date(2026, 8, 20, 8, 30, 0, 0, time.FixedZone("", 2*3600))
	assert.True(t, article.ArticleDate.Equal(want))
}

func TestValidateAndExtract_TitleFallsBackToPageTitle(t *testing.T) {
	t.Parallel()

	v := NewHTTPContentValidator(nil, "motscan-test", logger.NewNoOp())
	doc := &domain.Document{
		Body: []byte(`<html><head><title>Titre de secours</title></head>
			<body><div class="corps"><p>Contenu principal de la page.</p></div></body></html>`),
		URL: "https://www.lefigaro.fr/article",
	}

	src := sources.Config{
		Name:      "lefigaro",
		Selectors: sources.SourceSelectors{Article: sources.ArticleSelectors{Body: "div.corps"}},
	}

	article, err := v.ValidateAndExtract(doc, src)
	require.NoError(t, err)
	assert.Equal(t, "Titre de secours", article.Title)
	assert.True(t, article.ArticleDate.IsZero(), "no datetime attribute leaves the date unset")
}

func TestValidateAndExtract_NoContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"nav only", `<html><body><nav>Menu</nav></body></html>`},
		{
			// Readability salvages the text, but a handful of boilerplate
			// words is not an article.
			"short boilerplate",
			`<html><body><p>Abonnez-vous à la newsletter.</p></body></html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := NewHTTPContentValidator(nil, "motscan-test", logger.NewNoOp())
			doc := &domain.Document{
				Body: []byte(tt.body),
				URL:  "https://www.lemonde.fr/vide",
			}

			_, err := v.ValidateAndExtract(doc, articleSource())
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}
