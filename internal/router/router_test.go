package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/config"
	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"
	"github.com/AkshayGangurde12/farm-management-system/internal/services"

	"github.com/rs/zerolog"
)

func testConfig() config.Config {
	return config.Config{
		SessionKey:     []byte("0123456789abcdef0123456789abcdef"),
		CSRFKey:        []byte("fedcba9876543210fedcba9876543210"),
		JWTSecret:      "router-test-secret",
		JWTTTL:         time.Hour,
		SessionTTL:     time.Hour,
		RateLimit:      1000,
		RateBurst:      1000,
		AllowedOrigins: []string{"*"},
	}
}

func newTestServer(t *testing.T, cfg config.Config) (*httptest.Server, *services.Marketplace) {
	t.Helper()
	logger := zerolog.Nop()
	database := db.InitDB()
	db.RunMigrations(database, logger)
	market := services.NewMarketplace(database, services.MarketplaceOptions{
		SessionTTL: cfg.SessionTTL,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
	}, logger)

	r, err := SetupRouter(cfg, market, logger)
	if err != nil {
		t.Fatalf("Failed to set up router: %v", err)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, market
}

// browser is a client that keeps cookies across requests and follows redirects.
func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return string(body)
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s failed: %v", rawURL, err)
	}
	return resp, readBody(t, resp)
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", rawURL, err)
	}
	return resp, readBody(t, resp)
}

func signupAndLogin(t *testing.T, client *http.Client, base, username, email, password string) {
	t.Helper()
	_, body := postForm(t, client, base+"/signup", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	if !strings.Contains(body, "Signup successful! Please login.") {
		t.Fatalf("Expected signup success flash, got: %s", body)
	}
	_, body = postForm(t, client, base+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if !strings.Contains(body, "Login successful!") {
		t.Fatalf("Expected login success flash, got: %s", body)
	}
}

func addProduct(t *testing.T, client *http.Client, base, name string) {
	t.Helper()
	_, body := postForm(t, client, base+"/addagroproduct", url.Values{
		"productname": {name},
		"productdesc": {"Fresh"},
		"price":       {"40"},
		"basePrice":   {"30"},
		"category":    {"Vegetables"},
		"quantity":    {"10"},
		"image":       {"tomato.png"},
		"available":   {"on"},
	})
	if !strings.Contains(body, "Product added successfully!") {
		t.Fatalf("Expected product added flash, got: %s", body)
	}
}

func TestHealthAndTest(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := srv.Client()

	resp, body := get(t, client, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from /health, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("Unexpected health body: %s", body)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("Expected security headers on /health")
	}

	resp, body = get(t, client, srv.URL+"/test")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "running") {
		t.Errorf("Unexpected /test response: %d %q", resp.StatusCode, body)
	}
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := browser(t)

	for _, path := range []string{"/addagroproduct", "/myproducts", "/register", "/farmerdetails", "/addfarming", "/triggers", "/edit/1", "/delete/1", "/toggle_availability/1"} {
		resp, body := get(t, client, srv.URL+path)
		if resp.Request.URL.Path != "/login" {
			t.Errorf("%s: expected redirect to /login, ended at %s", path, resp.Request.URL.Path)
		}
		if !strings.Contains(body, "Please login first") {
			t.Errorf("%s: expected login warning flash", path)
		}
	}
}

func TestSignupLoginLogout(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := browser(t)

	signupAndLogin(t, client, srv.URL, "ravi", "ravi@example.com", "secret")

	_, body := get(t, client, srv.URL+"/")
	if !strings.Contains(body, "Signed in as ravi") {
		t.Errorf("Expected signed in nav on index page")
	}

	_, body = postForm(t, client, srv.URL+"/signup", url.Values{
		"username": {"other"},
		"email":    {"ravi@example.com"},
		"password": {"x"},
	})
	if !strings.Contains(body, "Email already exists") {
		t.Errorf("Expected duplicate email flash")
	}

	resp, body := get(t, client, srv.URL+"/logout")
	if resp.Request.URL.Path != "/login" || !strings.Contains(body, "Logged out successfully") {
		t.Errorf("Expected logout to land on /login with flash, got %s", resp.Request.URL.Path)
	}

	resp, _ = get(t, client, srv.URL+"/myproducts")
	if resp.Request.URL.Path != "/login" {
		t.Errorf("Expected protected page to require login after logout")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := browser(t)

	postForm(t, client, srv.URL+"/signup", url.Values{
		"username": {"asha"},
		"email":    {"asha@example.com"},
		"password": {"pw"},
	})

	resp, body := postForm(t, client, srv.URL+"/login", url.Values{
		"email":    {"asha@example.com"},
		"password": {"wrong"},
	})
	if resp.Request.URL.Path != "/login" || !strings.Contains(body, "Invalid credentials") {
		t.Errorf("Expected invalid credentials flash on /login")
	}
}

func TestProductOwnershipThroughPages(t *testing.T) {
	srv, market := newTestServer(t, testConfig())
	owner := browser(t)
	stranger := browser(t)

	signupAndLogin(t, owner, srv.URL, "owner", "owner@example.com", "pw")
	signupAndLogin(t, stranger, srv.URL, "stranger", "stranger@example.com", "pw")

	addProduct(t, owner, srv.URL, "Tomatoes")

	_, body := get(t, stranger, srv.URL+"/agroproducts")
	if !strings.Contains(body, "Tomatoes") {
		t.Errorf("Expected public listing to show the product")
	}

	_, body = get(t, stranger, srv.URL+"/myproducts")
	if strings.Contains(body, "Tomatoes") {
		t.Errorf("Expected product to be absent from another user's listing")
	}

	product := market.Products.List()[0]
	_, body = get(t, stranger, srv.URL+"/toggle_availability/"+itoa(product.ID))
	if !strings.Contains(body, "Product not found or access denied") {
		t.Errorf("Expected access denied flash for non-owner toggle")
	}
	if !market.Products.List()[0].Available {
		t.Errorf("Expected product to remain available after non-owner toggle")
	}

	_, body = get(t, owner, srv.URL+"/toggle_availability/"+itoa(product.ID))
	if !strings.Contains(body, "Product marked as unavailable") {
		t.Errorf("Expected owner toggle flash, got: %s", body)
	}
	if market.Products.List()[0].Available {
		t.Errorf("Expected product to be unavailable after owner toggle")
	}
}

func TestFarmerRecordLifecycleThroughPages(t *testing.T) {
	srv, market := newTestServer(t, testConfig())
	client := browser(t)
	signupAndLogin(t, client, srv.URL, "clerk", "clerk@example.com", "pw")

	_, body := get(t, client, srv.URL+"/register")
	if !strings.Contains(body, "Organic Farming") {
		t.Errorf("Expected registration form to list seeded farming types")
	}

	form := url.Values{
		"farmername":  {"Suresh"},
		"adharnumber": {"1234"},
		"age":         {"45"},
		"gender":      {"Male"},
		"phonenumber": {"9999"},
		"address":     {"Nashik"},
		"farmingtype": {"Organic Farming"},
	}
	_, body = postForm(t, client, srv.URL+"/register", form)
	if !strings.Contains(body, "Suresh") {
		t.Fatalf("Expected farmer details to list the new record")
	}
	id := market.Farmers.List()[0].ID

	form.Set("farmername", "Suresh Patil")
	_, body = postForm(t, client, srv.URL+"/edit/"+itoa(id), form)
	if !strings.Contains(body, "Farmer record updated successfully") || !strings.Contains(body, "Suresh Patil") {
		t.Errorf("Expected updated record and flash")
	}

	_, body = get(t, client, srv.URL+"/edit/999")
	if !strings.Contains(body, "Farmer not found") {
		t.Errorf("Expected not found flash for missing farmer")
	}

	_, body = get(t, client, srv.URL+"/delete/"+itoa(id))
	if !strings.Contains(body, "Farmer record deleted successfully") {
		t.Errorf("Expected delete flash")
	}
	if len(market.Farmers.List()) != 0 {
		t.Errorf("Expected no farmers after delete")
	}

	_, body = get(t, client, srv.URL+"/delete/"+itoa(id))
	if !strings.Contains(body, "Farmer record not found") {
		t.Errorf("Expected not found flash on second delete")
	}
}

func TestFarmingTypesThroughPages(t *testing.T) {
	srv, market := newTestServer(t, testConfig())
	client := browser(t)
	signupAndLogin(t, client, srv.URL, "clerk", "clerk@example.com", "pw")

	_, body := postForm(t, client, srv.URL+"/addfarming", url.Values{"farming": {"Poultry"}})
	if !strings.Contains(body, "Farming type added successfully!") {
		t.Errorf("Expected farming type added flash")
	}
	_, body = postForm(t, client, srv.URL+"/addfarming", url.Values{"farming": {"Poultry"}})
	if !strings.Contains(body, "Farming type already exists") {
		t.Errorf("Expected duplicate farming type flash")
	}
	if got := len(market.Farming.List()); got != len(models.DefaultFarmingTypes)+1 {
		t.Errorf("Expected %d farming types, got %d", len(models.DefaultFarmingTypes)+1, got)
	}

	_, body = get(t, client, srv.URL+"/triggers")
	if !strings.Contains(body, "Poultry") {
		t.Errorf("Expected activity page to mention the new farming type")
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := srv.Client()

	resp, body := get(t, client, srv.URL+"/no-such-page")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "<html") {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML 404 page, got %s", resp.Header.Get("Content-Type"))
	}

	resp, body = get(t, client, srv.URL+"/api/v1/nothing")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "not_found") {
		t.Errorf("Expected JSON 404 for API path, got %d %s", resp.StatusCode, body)
	}
}

func TestCSRFRejectsFormWithoutToken(t *testing.T) {
	cfg := testConfig()
	cfg.CSRFEnabled = true
	srv, _ := newTestServer(t, cfg)
	client := browser(t)

	resp, _ := postForm(t, client, srv.URL+"/signup", url.Values{
		"username": {"x"},
		"email":    {"x@example.com"},
		"password": {"x"},
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 without CSRF token, got %d", resp.StatusCode)
	}

	_, body := get(t, client, srv.URL+"/signup")
	if !strings.Contains(body, "gorilla.csrf.Token") {
		t.Errorf("Expected signup form to carry the CSRF field")
	}
}

var csrfFieldPattern = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

func csrfToken(t *testing.T, page string) string {
	t.Helper()
	m := csrfFieldPattern.FindStringSubmatch(page)
	if m == nil {
		t.Fatalf("Expected a CSRF field in the form, got: %s", page)
	}
	return m[1]
}

func TestCSRFAcceptsFormWithToken(t *testing.T) {
	cfg := testConfig()
	cfg.CSRFEnabled = true
	srv, market := newTestServer(t, cfg)
	client := browser(t)

	_, page := get(t, client, srv.URL+"/signup")
	form := url.Values{
		"username":           {"meera"},
		"email":              {"meera@example.com"},
		"password":           {"pw"},
		"gorilla.csrf.Token": {csrfToken(t, page)},
	}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/signup", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", srv.URL)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST /signup failed: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Signup successful! Please login.") {
		t.Fatalf("Expected signup to succeed with a CSRF token, got %d: %s", resp.StatusCode, body)
	}
	if _, err := market.Users.Authenticate(&models.LoginRequest{Email: "meera@example.com", Password: "pw"}); err != nil {
		t.Errorf("Expected the user to be registered: %v", err)
	}
}

func TestCSRFCheckedBeforeLogin(t *testing.T) {
	cfg := testConfig()
	cfg.CSRFEnabled = true
	srv, _ := newTestServer(t, cfg)
	client := browser(t)

	resp, _ := postForm(t, client, srv.URL+"/addagroproduct", url.Values{"productname": {"Okra"}})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for an anonymous tokenless POST, got %d", resp.StatusCode)
	}

	resp, _ = get(t, client, srv.URL+"/addagroproduct")
	if resp.Request.URL.Path != "/login" {
		t.Errorf("Expected anonymous GET to redirect to /login, ended at %s", resp.Request.URL.Path)
	}
}

func apiRequest(t *testing.T, client *http.Client, method, rawURL, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, rawURL, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, data
}

func apiSignup(t *testing.T, client *http.Client, base, username, email string) models.AuthResponse {
	t.Helper()
	resp, data := apiRequest(t, client, http.MethodPost, base+"/api/v1/auth/signup", "", models.SignupRequest{
		Username: username,
		Email:    email,
		Password: "pw",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 from signup, got %d: %s", resp.StatusCode, data)
	}
	var auth models.AuthResponse
	if err := json.Unmarshal(data, &auth); err != nil {
		t.Fatalf("Failed to decode auth response: %v", err)
	}
	if auth.Token == "" {
		t.Fatalf("Expected a token in the auth response")
	}
	return auth
}

func TestAPIAuthAndProducts(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := srv.Client()

	owner := apiSignup(t, client, srv.URL, "owner", "owner@example.com")
	other := apiSignup(t, client, srv.URL, "other", "other@example.com")

	resp, data := apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/auth/signup", "", models.SignupRequest{
		Username: "dup", Email: "owner@example.com", Password: "pw",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d: %s", resp.StatusCode, data)
	}

	resp, _ = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/auth/login", "", models.LoginRequest{
		Email: "owner@example.com", Password: "bad",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad login, got %d", resp.StatusCode)
	}

	resp, _ = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/auth/login", "", models.LoginRequest{
		Email: "owner@example.com",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for blank password, got %d", resp.StatusCode)
	}

	resp, _ = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/products", "", models.ProductRequest{Name: "Rice"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 creating product without token, got %d", resp.StatusCode)
	}

	resp, data = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/products", owner.Token, models.ProductRequest{
		Name: "Rice", Price: "50", Available: true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 creating product, got %d: %s", resp.StatusCode, data)
	}
	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		t.Fatalf("Failed to decode product: %v", err)
	}
	if product.OwnerEmail != "owner@example.com" || product.OwnerUsername != "owner" {
		t.Errorf("Expected owner fields copied from token user, got %+v", product)
	}

	resp, data = apiRequest(t, client, http.MethodGet, srv.URL+"/api/v1/products/mine", other.Token, nil)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty listing for other user, got %d %s", resp.StatusCode, data)
	}

	toggleURL := srv.URL + "/api/v1/products/" + itoa(product.ID) + "/toggle"
	resp, _ = apiRequest(t, client, http.MethodPost, toggleURL, other.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for non-owner toggle, got %d", resp.StatusCode)
	}

	resp, data = apiRequest(t, client, http.MethodPost, toggleURL, owner.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 for owner toggle, got %d: %s", resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, &product); err != nil {
		t.Fatalf("Failed to decode product: %v", err)
	}
	if product.Available {
		t.Errorf("Expected product to be unavailable after toggle")
	}

	resp, data = apiRequest(t, client, http.MethodGet, srv.URL+"/api/v1/products", "", nil)
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("Failed to list products: %d %v", resp.StatusCode, err)
	}
	if len(products) != 1 {
		t.Errorf("Expected 1 product, got %d", len(products))
	}

	resp, data = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/auth/refresh", owner.Token, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"token"`) {
		t.Errorf("Expected refreshed token, got %d %s", resp.StatusCode, data)
	}
}

func TestAPIFarmersAndFarmingTypes(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := srv.Client()
	auth := apiSignup(t, client, srv.URL, "clerk", "clerk@example.com")

	resp, data := apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/farmers", auth.Token, models.FarmerRequest{
		FarmerName: "Meena", FarmingType: "Dairy Farming",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 creating farmer, got %d: %s", resp.StatusCode, data)
	}
	var farmer models.FarmerRecord
	if err := json.Unmarshal(data, &farmer); err != nil {
		t.Fatalf("Failed to decode farmer: %v", err)
	}

	farmerURL := srv.URL + "/api/v1/farmers/" + itoa(farmer.ID)
	resp, data = apiRequest(t, client, http.MethodPut, farmerURL, auth.Token, models.FarmerRequest{FarmerName: "Meena Devi"})
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "Meena Devi") {
		t.Errorf("Expected update to succeed, got %d %s", resp.StatusCode, data)
	}

	resp, _ = apiRequest(t, client, http.MethodDelete, farmerURL, auth.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 deleting farmer, got %d", resp.StatusCode)
	}
	resp, _ = apiRequest(t, client, http.MethodGet, farmerURL, auth.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
	}

	resp, _ = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/farming-types", auth.Token, models.FarmingTypeRequest{Name: "Organic Farming"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for existing farming type, got %d", resp.StatusCode)
	}
	resp, _ = apiRequest(t, client, http.MethodPost, srv.URL+"/api/v1/farming-types", auth.Token, models.FarmingTypeRequest{Name: ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty farming type, got %d", resp.StatusCode)
	}

	resp, data = apiRequest(t, client, http.MethodGet, srv.URL+"/api/v1/activity", auth.Token, nil)
	var entries []models.ActivityEntry
	if err := json.Unmarshal(data, &entries); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("Failed to read activity: %d %v", resp.StatusCode, err)
	}
	if len(entries) == 0 || entries[0].Action != string(models.ActionFarmerDeleted) {
		t.Errorf("Expected newest activity entry to be the farmer deletion, got %+v", entries)
	}
}

func TestAPIUserProfile(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := srv.Client()
	first := apiSignup(t, client, srv.URL, "first", "first@example.com")
	second := apiSignup(t, client, srv.URL, "second", "second@example.com")

	resp, data := apiRequest(t, client, http.MethodGet, srv.URL+"/api/v1/users/me", first.Token, nil)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "first@example.com") {
		t.Errorf("Expected own profile, got %d %s", resp.StatusCode, data)
	}
	if strings.Contains(string(data), "password") {
		t.Errorf("Expected password to be omitted from profile: %s", data)
	}

	resp, _ = apiRequest(t, client, http.MethodGet, srv.URL+"/api/v1/users/"+itoa(second.User.ID), first.Token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 reading another profile, got %d", resp.StatusCode)
	}
}

func TestAPIRejectsNonJSONBody(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())
	client := srv.Client()

	resp, err := client.Post(srv.URL+"/api/v1/auth/login", "text/plain", strings.NewReader("email=x"))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-JSON body, got %d", resp.StatusCode)
	}
}

func TestAPIPreflight(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/products", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("Preflight failed: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Errorf("Expected CORS headers on preflight response")
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
