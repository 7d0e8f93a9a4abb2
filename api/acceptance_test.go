package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/cipherdeck/cipherdeck/anchor"
	"github.com/cipherdeck/cipherdeck/lens"
	"github.com/cipherdeck/cipherdeck/store"
)

type JSON = map[string]interface{}

var recordIDFormat = regexp.MustCompile(`^mtx-[0-9a-f]{8}-\d+$`)

func buildTestAPI(t *testing.T, apiKey string) (*apitest.Apitest, *store.Store) {

	st := store.NewStore(&store.Config{
		Dir:      t.TempDir(),
		VaultDir: t.TempDir(),
	}, nil)
	_, err := st.Load()
	biff.AssertNil(err)
	biff.AssertEqual(st.GetStatus(), store.StatusOperating)

	anc := anchor.Load(filepath.Join(t.TempDir(), "Vault_Memory_Anchor.json"))

	b := Build(st, anc, lens.Placeholder{}, "test", apiKey)
	b.WithInterceptors(
		PrettyErrorInterceptor,
		RecoverFromPanic,
	)

	return apitest.NewWithHandler(b), st
}

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		apiKey := "cipher-secret"
		api, st := buildTestAPI(t, apiKey)

		request := func(method, path string) *apitest.Request {
			return api.Request(method, path).WithHeader("X-Api-Key", apiKey)
		}

		a.Alternative("Upload record", func(a *biff.A) {
			resp := request("POST", "/v1/records").
				WithBodyJson(JSON{"archetype": "guardian", "title": "alpha"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJsonMap()
			biff.AssertEqual(body["message"], "Matrix uploaded and stored successfully.")

			id, _ := body["id"].(string)
			biff.AssertTrue(recordIDFormat.MatchString(id))

			a.Alternative("Retrieve record", func(a *biff.A) {
				resp := request("GET", "/v1/records/"+id).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				body := resp.BodyJsonMap()
				biff.AssertEqual(body["id"], id)
				biff.AssertEqual(body["archetype"], "guardian")
				biff.AssertEqualJson(body["drift_rating"], 1.0)
				biff.AssertEqual(body["title"], "alpha")
				biff.AssertNotEqual(body["created_at"], "")
			})

			a.Alternative("List records", func(a *biff.A) {
				resp := request("GET", "/v1/records").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"records": []interface{}{id},
				})
			})

			a.Alternative("Patch record", func(a *biff.A) {
				resp := request("PATCH", "/v1/records/"+id).
					WithBodyJson(JSON{"drift_rating": 2.5}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.BodyJsonMap()["id"], id)

				resp = request("GET", "/v1/records/"+id).Do()
				body := resp.BodyJsonMap()
				biff.AssertEqualJson(body["drift_rating"], 2.5)
				biff.AssertEqual(body["archetype"], "guardian")
				biff.AssertEqual(body["title"], "alpha")
			})

			a.Alternative("Remove record twice", func(a *biff.A) {
				resp := request("DELETE", "/v1/records/"+id).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = request("DELETE", "/v1/records/"+id).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				a.Alternative("Retrieve removed record", func(a *biff.A) {
					resp := request("GET", "/v1/records/"+id).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})
			})

			a.Alternative("Reload store", func(a *biff.A) {
				resp := request("POST", "/v1/records:reload").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJsonMap()["count"], 1)
			})

			a.Alternative("Find with filter", func(a *biff.A) {
				resp := request("POST", "/v1/records:find").
					WithBodyJson(JSON{"filter": JSON{"archetype": "guardian"}}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertTrue(bytes.Contains(resp.BodyBytes(), []byte(id)))
			})

			a.Alternative("Download core pack", func(a *biff.A) {
				resp := request("GET", "/v1/records:download").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.Header.Get("Content-Type"), "application/zip")

				data := resp.BodyBytes()
				z, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
				biff.AssertNil(err)
				biff.AssertEqual(len(z.File), 1)
				biff.AssertEqual(z.File[0].Name, id+".json")
			})

			a.Alternative("Ping counts loaded records", func(a *biff.A) {
				resp := api.Request("GET", "/v1/ping").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				body := resp.BodyJsonMap()
				biff.AssertEqual(body["status"], "CipherDeck backend live.")
				biff.AssertEqualJson(body["records_loaded"], 1)
				biff.AssertEqual(st.Count(), 1)
			})
		})

		a.Alternative("Upload rejects non-object payload", func(a *biff.A) {
			resp := request("POST", "/v1/records").
				WithBodyString(`[1,2,3]`).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

			resp = request("POST", "/v1/records").
				WithBodyString(`null`).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

			biff.AssertEqual(st.Count(), 0)
		})

		a.Alternative("Review record", func(a *biff.A) {
			resp := request("POST", "/v1/records:review").
				WithBodyJson(JSON{
					"record_id": "mtx-0a0b0c0d-1",
					"record":    JSON{"archetype": "guardian"},
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			body := resp.BodyJsonMap()
			review, _ := body["review"].(map[string]interface{})
			biff.AssertNotNil(review)
			biff.AssertEqual(review["record_id"], "mtx-0a0b0c0d-1")
			biff.AssertEqual(review["lens_certified"], true)

			for _, field := range []string{"resonance", "emotional_depth", "symbolic_structure", "adaptive_intelligence", "final_rating"} {
				number, _ := review[field].(json.Number)
				score, err := number.Float64()
				biff.AssertNil(err)
				biff.AssertTrue(score >= 6)
				biff.AssertTrue(score <= 8)
			}
		})

		a.Alternative("Review without record", func(a *biff.A) {
			resp := request("POST", "/v1/records:review").
				WithBodyJson(JSON{"record_id": "mtx-0a0b0c0d-1"}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Certify record", func(a *biff.A) {
			resp := request("POST", "/v1/records:certify").
				WithBodyJson(JSON{"record_id": "mtx-0a0b0c0d-1"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"certification": JSON{
					"record_id": "mtx-0a0b0c0d-1",
					"certified": true,
				},
			})
		})

		a.Alternative("Certify without identifier", func(a *biff.A) {
			resp := request("POST", "/v1/records:certify").
				WithBodyJson(JSON{}).Do()
			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Empty store download has placeholder", func(a *biff.A) {
			resp := request("GET", "/v1/records:download").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			data := resp.BodyBytes()
			z, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			biff.AssertNil(err)
			biff.AssertEqual(len(z.File), 1)
			biff.AssertEqual(z.File[0].Name, "placeholder.txt")
		})

		a.Alternative("Vault status", func(a *biff.A) {
			resp := api.Request("GET", "/v1/vault/status").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJsonMap()["launch_ready"], true)
		})

		a.Alternative("Vault memory update and snapshot", func(a *biff.A) {
			resp := request("POST", "/v1/vault:update").
				WithBodyJson(JSON{"phase": "one"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			resp = request("GET", "/v1/vault:snapshot").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)

			snapshot, _ := resp.BodyJsonMap()["snapshot"].(map[string]interface{})
			biff.AssertEqual(snapshot["phase"], "one")
		})
	})
}
