package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"placementcms/adapters/excel"
	"placementcms/app"
	"placementcms/domain/core"
	"placementcms/domain/placement"
	domain "placementcms/domain/roster"
	"placementcms/internal/config"
	"placementcms/internal/roster"
	"placementcms/internal/testkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	students   *testkit.MockStudentRepository
	companies  *testkit.MockCompanyRepository
	placements *testkit.MockPlacementRepository
	imports    *testkit.MockImportLogRepository
}

func newTestServer(t *testing.T, opts ...roster.Option) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		students:   new(testkit.MockStudentRepository),
		companies:  new(testkit.MockCompanyRepository),
		placements: new(testkit.MockPlacementRepository),
		imports:    new(testkit.MockImportLogRepository),
	}

	studentSvc := app.NewStudentService(ts.students, nil)
	ingestor := roster.NewIngestor(excel.NewDecoder(excel.DefaultDecoderConfig()), opts...)
	services := Services{
		Students:   studentSvc,
		Companies:  app.NewCompanyService(ts.companies, nil),
		Placements: app.NewPlacementService(ts.placements, ts.students, ts.companies, nil),
		Dashboard:  app.NewDashboardService(ts.students, ts.companies, ts.placements, placement.EligibilityThreshold, nil),
		Roster:     app.NewRosterService(ingestor, studentSvc, ts.imports, false, nil),
	}
	cfg := config.ServerConfig{
		GinMode:        gin.TestMode,
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: []string{"*"},
	}
	ts.Server = NewServer(services, cfg, nil)
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func multipartUpload(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("note", "roster"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/students/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func rosterFile(rows ...[]interface{}) []byte {
	return testkit.MustXLSX(append([][]interface{}{testkit.RosterHeader()}, rows...)...)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestUpload_Accepted(t *testing.T) {
	ts := newTestServer(t)
	ts.imports.On("Record", mock.Anything, mock.Anything).Return(nil)

	data := rosterFile(
		testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82.5, "Eligible"),
		testkit.RosterRow("Ravi Teja", "ravi@x.com", "21CS002", "ECE", "76%", "Eligible"),
	)
	w := ts.do(multipartUpload(t, "file", "batch.xlsx", roster.MimeXLSX, data))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Successfully uploaded and validated 2 students.", body["message"])
	records := body["data"].([]interface{})
	require.Len(t, records, 2)
	first := records[0].(map[string]interface{})
	assert.Equal(t, "21CS001", first["rollNo"])
	assert.Equal(t, 82.5, first["btechPercentage"])
	assert.NotContains(t, body, "committed")
	ts.imports.AssertExpectations(t)
}

func TestUpload_Rejected(t *testing.T) {
	ts := newTestServer(t)
	ts.imports.On("Record", mock.Anything, mock.Anything).Return(nil)

	data := rosterFile(
		testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82.5, "Eligible"),
		testkit.RosterRow("Ravi Teja", "", "21CS002", "ECE", 76, "Eligible"),
	)
	w := ts.do(multipartUpload(t, "file", "batch.xlsx", roster.MimeXLSX, data))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed. See errors.", body["message"])
	assert.NotContains(t, body, "data")
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	rowErr := errs[0].(map[string]interface{})
	assert.Equal(t, float64(3), rowErr["row"])
	assert.Equal(t, "Missing or empty mandatory field: email", rowErr["message"])
}

func TestUpload_Partial(t *testing.T) {
	ts := newTestServer(t, roster.WithAcceptPolicy(roster.PartialAccept{}))
	ts.imports.On("Record", mock.Anything, mock.Anything).Return(nil)

	data := rosterFile(
		testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82.5, "Eligible"),
		testkit.RosterRow("Ravi Teja", "ravi@x.com", "21CS002", "ECE", "n/a", "Eligible"),
	)
	w := ts.do(multipartUpload(t, "file", "batch.xlsx", roster.MimeXLSX, data))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Uploaded and validated 1 students; 1 rows rejected.", body["message"])
	assert.Len(t, body["data"], 1)
	assert.Len(t, body["errors"], 2)
}

func TestUpload_TransportErrors(t *testing.T) {
	headerOnly := testkit.MustXLSX(testkit.RosterHeader())

	tests := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		status  int
		message string
	}{
		{
			name:    "missing file",
			req:     func(t *testing.T) *http.Request { return multipartUpload(t, "", "", "", nil) },
			status:  http.StatusBadRequest,
			message: "No file uploaded.",
		},
		{
			name:    "wrong field name",
			req:     func(t *testing.T) *http.Request { return multipartUpload(t, "roster", "a.xlsx", roster.MimeXLSX, headerOnly) },
			status:  http.StatusBadRequest,
			message: "No file uploaded.",
		},
		{
			name:    "not a spreadsheet",
			req:     func(t *testing.T) *http.Request { return multipartUpload(t, "file", "roster.csv", "text/csv", []byte("a,b\n1,2\n")) },
			status:  http.StatusBadRequest,
			message: "Invalid file type. Only .xlsx or .xls are allowed.",
		},
		{
			name:    "header only",
			req:     func(t *testing.T) *http.Request { return multipartUpload(t, "file", "roster.xlsx", roster.MimeXLSX, headerOnly) },
			status:  http.StatusBadRequest,
			message: "Excel file is empty or has no data rows.",
		},
		{
			name: "corrupt workbook",
			req: func(t *testing.T) *http.Request {
				return multipartUpload(t, "file", "roster.xlsx", roster.MimeXLSX, []byte("definitely not a workbook"))
			},
			status:  http.StatusInternalServerError,
			message: "Failed to process Excel file.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			w := ts.do(tt.req(t))

			require.Equal(t, tt.status, w.Code, w.Body.String())
			body := decodeBody(t, w)
			assert.Equal(t, tt.message, body["error"])
			if tt.status == http.StatusInternalServerError {
				assert.NotEmpty(t, body["details"])
			}
			ts.imports.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		})
	}
}

func TestUpload_TooLarge(t *testing.T) {
	ts := newTestServer(t)
	ts.cfg.MaxUploadBytes = 512

	data := rosterFile(testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82.5, "Eligible"))
	w := ts.do(multipartUpload(t, "file", "batch.xlsx", roster.MimeXLSX, data))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File too large.", decodeBody(t, w)["error"])
}

func TestUpload_DuplicateColumnRejected(t *testing.T) {
	ts := newTestServer(t, roster.WithDuplicatePolicy(roster.RejectDuplicates))

	data := testkit.MustXLSX(
		[]interface{}{"Name", "Student Name", "Email", "Roll No", "Branch", "BTech %", "Status"},
		[]interface{}{"Asha", "Asha Rao", "asha@x.com", "21CS001", "CSE", 82, "Eligible"},
	)
	w := ts.do(multipartUpload(t, "file", "batch.xlsx", roster.MimeXLSX, data))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "Student Name")
}

func TestUpload_TooManyRows(t *testing.T) {
	ts := newTestServer(t, roster.WithMaxRows(1))

	data := rosterFile(
		testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82, "Eligible"),
		testkit.RosterRow("Ravi", "", "21CS002", "ECE", 75, "Eligible"),
	)
	w := ts.do(multipartUpload(t, "file", "batch.xlsx", roster.MimeXLSX, data))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sheet has 2 data rows; the limit is 1", body["error"])
	assert.Nil(t, body["data"])
	ts.imports.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestRosterTemplate(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students/upload/template", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, roster.MimeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), templateFilename)

	wb, err := excel.NewDecoder(excel.DefaultDecoderConfig()).Decode(w.Body.Bytes())
	require.NoError(t, err)
	header := wb.FirstSheet()[0]
	assert.Equal(t, "Name", header[0].String())
	assert.Len(t, header, len(domain.AllFields))
}

func TestRosterHelp(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students/upload/help", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	page := w.Body.String()
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<code>studentname</code>")
	assert.Contains(t, page, "Roll No")
}

func TestRosterHelpMarkdown_ListsCustomAliases(t *testing.T) {
	fields, err := roster.DefaultFieldMap().WithAliases(map[string]string{"Hall Ticket": "rollNo"})
	require.NoError(t, err)

	md := rosterHelpMarkdown(fields)
	var rollRow string
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "| Roll No |") {
			rollRow = line
		}
	}
	require.NotEmpty(t, rollRow)
	assert.Contains(t, rollRow, "`hallticket`")
	assert.Contains(t, rollRow, "**yes**")
}

func TestRosterHistory(t *testing.T) {
	ts := newTestServer(t)
	ts.imports.On("ListRecent", mock.Anything, 5).Return([]domain.ImportLog{{ID: "x", Filename: "a.xlsx", Outcome: domain.OutcomeAccepted}}, nil)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students/upload/history?limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 1)
}

func sampleStudents() []placement.Student {
	mk := func(name, roll, branch string, pct float64, status string) placement.Student {
		return placement.Student{
			ID: core.NewID(),
			StudentRecord: domain.StudentRecord{
				Name: name, Email: roll + "@x.com", RollNo: roll, Branch: branch, BtechPercentage: pct, Status: status,
			},
		}
	}
	return []placement.Student{
		mk("Asha", "21CS001", "CSE", 82, "Eligible"),
		mk("Bala", "21CS002", "CSE", 91, "Placed"),
		mk("Chitra", "21EC001", "ECE", 65, "Eligible"),
	}
}

func TestListStudents_FilterSortPaginate(t *testing.T) {
	ts := newTestServer(t)
	ts.students.On("List", mock.Anything).Return(sampleStudents(), nil)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students?branch=CSE&sort=btechPercentage&order=desc&per_page=1", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Success bool            `json:"success"`
		Data    app.StudentPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Data.Total)
	assert.Equal(t, 2, body.Data.Pages)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Bala", body.Data.Items[0].Name)
}

func TestListStudents_StatusAndBand(t *testing.T) {
	ts := newTestServer(t)
	ts.students.On("List", mock.Anything).Return(sampleStudents(), nil)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students?status=Eligible&band=8-9", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data app.StudentPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Asha", body.Data.Items[0].Name)
}

func TestListStudents_BadQuery(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{"band=5-6", "sort=age", "min=high"} {
		w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	ts.students.AssertNotCalled(t, "List", mock.Anything)
}

func TestGetStudent(t *testing.T) {
	ts := newTestServer(t)
	missing := core.NewID()
	ts.students.On("GetByID", mock.Anything, missing).Return(nil, core.ErrStudentNotFound)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/students/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/students/"+missing.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestCreateStudent(t *testing.T) {
	ts := newTestServer(t)
	record := domain.StudentRecord{Name: "Asha", Email: "asha@x.com", RollNo: "21CS001", Branch: "CSE", BtechPercentage: 82, Status: "Eligible"}
	ts.students.On("Create", mock.Anything, record).Return(&placement.Student{ID: core.NewID(), StudentRecord: record}, nil)

	payload, _ := json.Marshal(record)
	req := httptest.NewRequest(http.MethodPost, "/api/students", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := ts.do(req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ts.students.AssertExpectations(t)

	invalid := `{"name":"Asha","rollNo":"21CS001","branch":"CSE","btechPercentage":82,"status":"Eligible"}`
	req = httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(invalid))
	req.Header.Set("Content-Type", "application/json")
	w = ts.do(req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "email is required")
}

func TestBulkCreateStudents_Conflict(t *testing.T) {
	ts := newTestServer(t)
	ts.students.On("BulkCreate", mock.Anything, mock.Anything).Return(nil, core.ErrDuplicateStudent)

	payload := `[{"name":"Asha","email":"asha@x.com","rollNo":"21CS001","branch":"CSE","btechPercentage":82,"status":"Eligible"}]`
	req := httptest.NewRequest(http.MethodPost, "/api/students/bulk", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := ts.do(req)

	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestDeleteStudent(t *testing.T) {
	ts := newTestServer(t)
	id := core.NewID()
	ts.students.On("Delete", mock.Anything, id).Return(nil)

	w := ts.do(httptest.NewRequest(http.MethodDelete, "/api/students/"+id.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	ts.students.AssertExpectations(t)
}

func TestCompanies(t *testing.T) {
	ts := newTestServer(t)
	ts.companies.On("List", mock.Anything).Return([]placement.Company{{Name: "Acme"}, {Name: "Globex"}}, nil)
	ts.companies.On("Create", mock.Anything, mock.Anything).Return(core.ErrDuplicateCompany)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/companies?q=acm", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	req := httptest.NewRequest(http.MethodPost, "/api/companies", strings.NewReader(`{"name":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	w = ts.do(req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreatePlacement(t *testing.T) {
	ts := newTestServer(t)
	studentID, companyID := core.NewID(), core.NewID()
	ts.students.On("GetByID", mock.Anything, studentID).Return(&placement.Student{ID: studentID}, nil)
	ts.companies.On("GetByID", mock.Anything, companyID).Return(&placement.Company{ID: companyID}, nil)
	ts.placements.On("Create", mock.Anything, mock.MatchedBy(func(p *placement.Placement) bool {
		return p.Status == placement.PlacementOffered && p.PlacementDate.Format("2006-01-02") == "2025-03-01"
	})).Return(nil)

	payload := `{"studentId":"` + studentID.String() + `","companyId":"` + companyID.String() + `","position":"SDE","package":12.5,"placementDate":"2025-03-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/placements", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := ts.do(req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ts.placements.AssertExpectations(t)

	req = httptest.NewRequest(http.MethodPost, "/api/placements", strings.NewReader(`{"studentId":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w = ts.do(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStats(t *testing.T) {
	ts := newTestServer(t)
	ts.students.On("List", mock.Anything).Return(sampleStudents(), nil)
	ts.companies.On("Count", mock.Anything).Return(4, nil)
	ts.placements.On("Count", mock.Anything).Return(2, nil)
	ts.placements.On("CountPlaced", mock.Anything).Return(1, nil)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Data placement.DashboardStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Students)
	assert.Equal(t, 4, body.Data.Companies)
	assert.Equal(t, 2, body.Data.Eligible)
}

func TestDashboardStats_StoreFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.students.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
	ts.companies.On("Count", mock.Anything).Return(0, nil)
	ts.placements.On("Count", mock.Anything).Return(0, nil)
	ts.placements.On("CountPlaced", mock.Anything).Return(0, nil)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/api/students", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = ts.do(req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(cors([]string{"https://tpo.example.edu"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://tpo.example.edu")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://tpo.example.edu", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
