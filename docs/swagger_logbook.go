package docs

// @title           Vehicle Logbook API
// @version         1.0
// @description     Daily driving logbook for a single vehicle operator. Tracks workday sessions, trips with frozen fuel-cost metrics, and CSV exports.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3100
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
