package translate

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const exampleResponse = `{
	"responseData": {
	  "translatedText": "casa",
	  "match": 1
	},
	"quotaFinished": false,
	"mtLangSupported": null,
	"responseDetails": "",
	"responseStatus": 200,
	"responderId": "228",
	"exception_code": null,
	"matches": [
	  {
		"id": "589140219",
		"segment": "house",
		"translation": "casa",
		"source": "en-GB",
		"target": "es-ES",
		"quality": "74",
		"reference": null,
		"usage-count": 2,
		"subject": "All",
		"created-by": "MateCat",
		"last-updated-by": "MateCat",
		"create-date": "2021-11-05 13:50:59",
		"last-update-date": "2021-11-05 13:50:59",
		"match": 1
	  }
	]
}`

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestTranslate(t *testing.T) {
	validURL := "https://api.mymemory.translated.net/get?langpair=en%7Ces&q=house"
	word := "house"
	getClient := func(transport RoundTripFunc) Client {
		return Client{client: &http.Client{Transport: transport}, baseURL: apiURL}
	}
	t.Run("success", func(t *testing.T) {
		client := getClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, validURL, req.URL.String())
			return &http.Response{
				StatusCode: 200,
				Body:       ioutil.NopCloser(bytes.NewBufferString(exampleResponse)),
				Header:     make(http.Header),
			}, nil
		})
		translation, err := client.Translate(context.TODO(), word, "en", "es")

		assert.NoError(t, err)
		expected := TranslationResponse{
			Result: TranslationResult{Text: "casa", Match: 1},
			Matches: []TranslationMatch{
				{
					ID:          "589140219",
					Segment:     "house",
					Translation: "casa",
					Source:      "en-GB",
					Target:      "es-ES",
					Quality:     "74",
					Reference:   nil,
					UsageCount:  2,
					Subject:     "All",
					Match:       1,
				},
			},
			QuotaFinished:   false,
			ResponseDetails: "",
			ResponseStatus:  200,
			ResponderID:     "228",
			ExceptionCode:   nil,
		}
		assert.Equal(t, expected, translation)
	})
	t.Run("token passed", func(t *testing.T) {
		token := "secret"
		client := getClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "secret", req.URL.Query().Get("key"))
			return &http.Response{
				StatusCode: 200,
				Body:       ioutil.NopCloser(bytes.NewBufferString(exampleResponse)),
				Header:     make(http.Header),
			}, nil
		})
		client.apiToken = &token
		_, err := client.Translate(context.TODO(), word, "en", "es")
		assert.NoError(t, err)
	})
	t.Run("request error", func(t *testing.T) {
		client := getClient(func(req *http.Request) (*http.Response, error) {
			return &http.Response{}, http.ErrServerClosed
		})
		translation, err := client.Translate(context.TODO(), word, "en", "es")
		assert.ErrorIs(t, err, http.ErrServerClosed)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("invalid response", func(t *testing.T) {
		client := getClient(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 200,
				Body:       ioutil.NopCloser(bytes.NewBufferString("Invalid JSON")),
				Header:     make(http.Header),
			}, nil
		})
		translation, err := client.Translate(context.TODO(), word, "en", "es")
		assert.Error(t, err)
		assert.Equal(t, TranslationResponse{}, translation)
	})
	t.Run("error status", func(t *testing.T) {
		client := getClient(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 400,
				Body:       ioutil.NopCloser(bytes.NewBufferString(`{"status": "ERROR"}`)),
				Header:     make(http.Header),
			}, nil
		})
		_, err := client.Translate(context.TODO(), word, "en", "es")
		assert.Error(t, err)
	})
	t.Run("same as input", func(t *testing.T) {
		client := getClient(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: 200,
				Body: ioutil.NopCloser(
					bytes.NewBufferString(`{"responseData": {"translatedText": "House", "match": 1}}`),
				),
				Header: make(http.Header),
			}, nil
		})
		_, err := client.Translate(context.TODO(), word, "en", "es")
		assert.ErrorIs(t, err, ErrUnknown)
	})
}
