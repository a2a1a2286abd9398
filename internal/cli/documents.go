package cli

import (
	"github.com/archsketch/archsketch/pkg/diagram"
)

// Icon references for the bundled documents, resolved against the configured
// asset directories at render time.
const (
	iconAmazonQ = "amazon-q.png"
	iconShopify = "shopify.png"
)

// builtinDoc pairs a bundled document constructor with its artifact stem.
type builtinDoc struct {
	stem  string
	build func() (*diagram.Document, error)
}

// builtinDocuments returns the bundled architecture documents in generation
// order.
func builtinDocuments() []builtinDoc {
	return []builtinDoc{
		{stem: "shopify-plugin-complete-architecture", build: buildCompleteArchitecture},
		{stem: "oauth-flow-detailed-sequence", build: buildFlowSequence},
		{stem: "shopify-api-operations", build: buildOperationsOverview},
	}
}

// buildCompleteArchitecture declares the end-to-end integration document:
// external actors, the cloud boundary with its auth, core, and monitoring
// layers, and the numbered OAuth, request, and logging flows.
func buildCompleteArchitecture() (*diagram.Document, error) {
	doc := diagram.New("Amazon Q Business Shopify Plugin - Complete Architecture",
		diagram.WithDirection(diagram.DirectionLR))
	b := doc.Builder()

	if _, err := b.Node("amazon_q", "Amazon Q Business\nClient", diagram.WithIcon(iconAmazonQ)); err != nil {
		return nil, err
	}
	if _, err := b.Node("shopify", "Shopify Admin API\n(External Service)", diagram.WithIcon(iconShopify)); err != nil {
		return nil, err
	}

	err := b.Cluster("AWS Cloud Infrastructure", func(b *diagram.Builder) error {
		if _, err := b.Node("api", "API Gateway\n(REST API)\n- /oauth/authorize\n- /oauth/token\n- /products\n- /orders\n- /customers\n- /inventory\n- /locations",
			diagram.WithKind(diagram.KindManaged)); err != nil {
			return err
		}

		err := b.Cluster("Authentication & Authorization Layer", func(b *diagram.Builder) error {
			if _, err := b.Node("oauth_lambda", "OAuth Handler\nLambda\n(/oauth/*)"); err != nil {
				return err
			}
			if _, err := b.Node("authorizer_lambda", "Token Authorizer\nLambda\n(Bearer Token\nValidation)"); err != nil {
				return err
			}
			if _, err := b.Node("auth_secrets", "OAuth Credentials\nSecret\n(client_id, client_secret,\nredirect_uri)",
				diagram.WithKind(diagram.KindManaged)); err != nil {
				return err
			}
			_, err := b.Node("auth_codes_table", "OAuth Authorization\nCodes Table\n(TTL enabled)",
				diagram.WithKind(diagram.KindStorage))
			return err
		})
		if err != nil {
			return err
		}

		err = b.Cluster("Core Application Layer", func(b *diagram.Builder) error {
			if _, err := b.Node("main_lambda", "Shopify Plugin\nHandler Lambda\n(All API Operations)"); err != nil {
				return err
			}
			_, err := b.Node("shopify_secrets", "Shopify API\nCredentials Secret\n(shop_name, access_token)",
				diagram.WithKind(diagram.KindManaged))
			return err
		})
		if err != nil {
			return err
		}

		return b.Cluster("Monitoring & Logging", func(b *diagram.Builder) error {
			_, err := b.Node("logs", "CloudWatch Logs\n(All Lambda logs)",
				diagram.WithKind(diagram.KindStorage))
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	// OAuth flow (steps 1-3)
	edges := []struct {
		from, to string
		opts     []diagram.EdgeOption
	}{
		{"amazon_q", "api", edgeOpts("1. OAuth Authorization\nRequest", "blue", diagram.StyleBold)},
		{"api", "oauth_lambda", edgeOpts("OAuth Endpoints", "blue", "")},
		{"oauth_lambda", "auth_secrets", edgeOpts("Read OAuth\nCredentials", "blue", "")},
		{"oauth_lambda", "auth_codes_table", edgeOpts("Store Auth Code\n(with TTL)", "blue", "")},
		{"oauth_lambda", "api", edgeOpts("2. Authorization Code\n& Access Token", "blue", diagram.StyleBold)},
		{"api", "amazon_q", edgeOpts("3. OAuth Response", "blue", diagram.StyleBold)},

		// API request flow (steps 4-7)
		{"amazon_q", "api", edgeOpts("4. API Request\n(Bearer Token)", "green", diagram.StyleBold)},
		{"api", "authorizer_lambda", edgeOpts("5. Token Validation", "green", "")},
		{"authorizer_lambda", "auth_secrets", edgeOpts("Validate Token\nFormat & Credentials", "green", "")},
		{"authorizer_lambda", "api", edgeOpts("6. Allow/Deny\nPolicy", "green", "")},

		// Authorized request processing (steps 7-9)
		{"api", "main_lambda", edgeOpts("7. Authorized Request\n(if token valid)", "orange", diagram.StyleBold)},
		{"main_lambda", "shopify_secrets", edgeOpts("8. Fetch Shopify\nCredentials", "orange", "")},
		{"main_lambda", "shopify", edgeOpts("9. Shopify API\nCalls (REST)", "orange", diagram.StyleBold)},

		// Logging connections
		{"main_lambda", "logs", edgeOpts("Application Logs", "gray", diagram.StyleDashed)},
		{"oauth_lambda", "logs", edgeOpts("OAuth Logs", "gray", diagram.StyleDashed)},
		{"authorizer_lambda", "logs", edgeOpts("Auth Logs", "gray", diagram.StyleDashed)},
	}
	for _, e := range edges {
		if err := b.Edge(e.from, e.to, e.opts...); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// buildFlowSequence declares the detailed OAuth 2.0 authorization code flow
// between the client, authorization server, and resource server.
func buildFlowSequence() (*diagram.Document, error) {
	doc := diagram.New("OAuth 2.0 Authorization Code Flow - Detailed Sequence",
		diagram.WithDirection(diagram.DirectionTB))
	b := doc.Builder()

	err := b.Cluster("Client Application", func(b *diagram.Builder) error {
		_, err := b.Node("qbusiness", "Amazon Q Business", diagram.WithIcon(iconAmazonQ))
		return err
	})
	if err != nil {
		return nil, err
	}

	err = b.Cluster("Authorization Server (AWS API Gateway + Lambda)", func(b *diagram.Builder) error {
		if _, err := b.Node("auth_endpoint", "/oauth/authorize\nEndpoint",
			diagram.WithKind(diagram.KindManaged)); err != nil {
			return err
		}
		if _, err := b.Node("token_endpoint", "/oauth/token\nEndpoint",
			diagram.WithKind(diagram.KindManaged)); err != nil {
			return err
		}
		if _, err := b.Node("oauth_handler", "OAuth Handler\nLambda"); err != nil {
			return err
		}
		if _, err := b.Node("auth_secret", "OAuth Credentials\n(client_id, client_secret)",
			diagram.WithKind(diagram.KindManaged)); err != nil {
			return err
		}
		_, err := b.Node("auth_codes_db", "Authorization Codes\nTable (DynamoDB)",
			diagram.WithKind(diagram.KindStorage))
		return err
	})
	if err != nil {
		return nil, err
	}

	err = b.Cluster("Resource Server (AWS)", func(b *diagram.Builder) error {
		if _, err := b.Node("api_gateway", "Protected API\nEndpoints",
			diagram.WithKind(diagram.KindManaged)); err != nil {
			return err
		}
		if _, err := b.Node("authorizer", "Token Authorizer\nLambda"); err != nil {
			return err
		}
		_, err := b.Node("resource_lambda", "Shopify Plugin\nHandler Lambda")
		return err
	})
	if err != nil {
		return nil, err
	}

	edges := []struct {
		from, to string
		opts     []diagram.EdgeOption
	}{
		{"qbusiness", "auth_endpoint", edgeOpts("1. Authorization Request\n(client_id, redirect_uri, state)", "blue", "")},
		{"auth_endpoint", "oauth_handler", nil},
		{"oauth_handler", "auth_secret", nil},
		{"oauth_handler", "auth_codes_db", edgeOpts("Generate & Store\nAuth Code", "blue", "")},
		{"oauth_handler", "qbusiness", edgeOpts("2. Authorization Code\n(via redirect or direct)", "blue", "")},

		{"qbusiness", "token_endpoint", edgeOpts("3. Token Request\n(code, client_id, client_secret)", "green", "")},
		{"token_endpoint", "oauth_handler", nil},
		{"oauth_handler", "auth_codes_db", edgeOpts("Validate Auth Code", "green", "")},
		{"oauth_handler", "auth_secret", nil},
		{"oauth_handler", "qbusiness", edgeOpts("4. Access Token\n(Bearer token)", "green", "")},

		{"qbusiness", "api_gateway", edgeOpts("5. API Request\n(Bearer token)", "orange", "")},
		{"api_gateway", "authorizer", nil},
		{"authorizer", "auth_secret", nil},
		{"authorizer", "api_gateway", edgeOpts("Allow/Deny Policy", "orange", "")},
		{"api_gateway", "resource_lambda", edgeOpts("6. Protected Resource\nAccess", "orange", "")},
	}
	for _, e := range edges {
		if err := b.Edge(e.from, e.to, e.opts...); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// buildOperationsOverview declares the API surface document: every gateway
// endpoint, the lambdas behind them, and the shared storage, with fan-out
// declared through Connect.
func buildOperationsOverview() (*diagram.Document, error) {
	doc := diagram.New("Shopify Plugin API Operations Overview",
		diagram.WithDirection(diagram.DirectionTB))
	b := doc.Builder()

	err := b.Cluster("Amazon Q Business Integration", func(b *diagram.Builder) error {
		_, err := b.Node("qbusiness_client", "Amazon Q Business", diagram.WithIcon(iconAmazonQ))
		return err
	})
	if err != nil {
		return nil, err
	}

	err = b.Cluster("AWS API Gateway Endpoints", func(b *diagram.Builder) error {
		err := b.Cluster("Authentication Endpoints", func(b *diagram.Builder) error {
			if _, err := b.Node("oauth_auth", "/oauth/authorize",
				diagram.WithKind(diagram.KindManaged)); err != nil {
				return err
			}
			_, err := b.Node("oauth_token", "/oauth/token",
				diagram.WithKind(diagram.KindManaged))
			return err
		})
		if err != nil {
			return err
		}

		return b.Cluster("Shopify Data Endpoints", func(b *diagram.Builder) error {
			endpoints := []struct{ id, label string }{
				{"products_api", "/products\n/products/{id}\n(GET, POST, PUT)"},
				{"orders_api", "/orders\n/orders/{id}\n(GET)"},
				{"customers_api", "/customers\n/customers/{id}\n(GET)"},
				{"inventory_api", "/inventory\n/inventory/{id}\n(GET, PUT)"},
				{"locations_api", "/locations\n/locations/{id}\n(GET)"},
			}
			for _, ep := range endpoints {
				if _, err := b.Node(ep.id, ep.label, diagram.WithKind(diagram.KindManaged)); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	err = b.Cluster("AWS Lambda Functions", func(b *diagram.Builder) error {
		if _, err := b.Node("oauth_lambda", "OAuth Handler"); err != nil {
			return err
		}
		if _, err := b.Node("auth_lambda", "Token Authorizer"); err != nil {
			return err
		}
		_, err := b.Node("main_lambda", "Shopify Plugin Handler")
		return err
	})
	if err != nil {
		return nil, err
	}

	err = b.Cluster("External Shopify API", func(b *diagram.Builder) error {
		_, err := b.Node("shopify_api", "Shopify Admin API\n- Products API\n- Orders API\n- Customers API\n- Inventory API\n- Locations API",
			diagram.WithIcon(iconShopify))
		return err
	})
	if err != nil {
		return nil, err
	}

	err = b.Cluster("AWS Storage & Security", func(b *diagram.Builder) error {
		if _, err := b.Node("secrets", "Credentials\nSecrets",
			diagram.WithKind(diagram.KindManaged)); err != nil {
			return err
		}
		if _, err := b.Node("dynamo", "Auth Codes\nTable",
			diagram.WithKind(diagram.KindStorage)); err != nil {
			return err
		}
		_, err := b.Node("logs", "CloudWatch\nLogs",
			diagram.WithKind(diagram.KindStorage))
		return err
	})
	if err != nil {
		return nil, err
	}

	edges := []struct {
		from, to string
		opts     []diagram.EdgeOption
	}{
		// Client connections to OAuth
		{"qbusiness_client", "oauth_auth", edgeOpts("OAuth Flow", "blue", "")},
		{"qbusiness_client", "oauth_token", edgeOpts("Token Exchange", "blue", "")},

		// Client connections to API endpoints
		{"qbusiness_client", "products_api", edgeOpts("Product Queries", "green", "")},
		{"qbusiness_client", "orders_api", edgeOpts("Order Queries", "green", "")},
		{"qbusiness_client", "customers_api", edgeOpts("Customer Queries", "green", "")},
		{"qbusiness_client", "inventory_api", edgeOpts("Inventory Management", "green", "")},
		{"qbusiness_client", "locations_api", edgeOpts("Location Queries", "green", "")},

		// Lambda connections
		{"oauth_auth", "oauth_lambda", nil},
		{"oauth_token", "oauth_lambda", nil},

		// Lambda to Shopify API
		{"main_lambda", "shopify_api", edgeOpts("REST API Calls", "red", "")},

		// Infrastructure connections
		{"oauth_lambda", "dynamo", nil},
		{"oauth_lambda", "secrets", nil},
		{"auth_lambda", "secrets", nil},
		{"main_lambda", "secrets", nil},
	}
	for _, e := range edges {
		if err := b.Edge(e.from, e.to, e.opts...); err != nil {
			return nil, err
		}
	}

	dataEndpoints := []string{"products_api", "orders_api", "customers_api", "inventory_api", "locations_api"}
	if err := b.Connect(dataEndpoints, []string{"main_lambda"},
		diagram.WithLabel("Authorized"), diagram.WithColor("orange")); err != nil {
		return nil, err
	}

	lambdas := []string{"oauth_lambda", "auth_lambda", "main_lambda"}
	if err := b.Connect(lambdas, []string{"logs"}); err != nil {
		return nil, err
	}

	return doc, nil
}

// edgeOpts builds the option list for a labeled, colored edge.
// An empty style keeps the solid default.
func edgeOpts(label, color string, style diagram.EdgeStyle) []diagram.EdgeOption {
	opts := []diagram.EdgeOption{
		diagram.WithLabel(label),
		diagram.WithColor(color),
	}
	if style != "" {
		opts = append(opts, diagram.WithStyle(style))
	}
	return opts
}
