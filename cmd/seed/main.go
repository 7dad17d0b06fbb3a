package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go-payroll/internal/config"
	"go-payroll/internal/database"
	"go-payroll/internal/features/settings"
	"go-payroll/internal/features/template"
	"go-payroll/pkg/utils"

	common_models "go-payroll/internal/common/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// insertIfMissing inserts doc unless a document already matches filter.
// Returns true when something was inserted.
func insertIfMissing(ctx context.Context, col *mongo.Collection, filter bson.M, doc bson.M) bool {
	count, err := col.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("Failed to check %s: %v", col.Name(), err)
		return false
	}
	if count > 0 {
		return false
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		log.Printf("Failed to insert into %s: %v", col.Name(), err)
		return false
	}
	return true
}

func main() {
	// Initialize Config & DB
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	mongoDB := &database.MongodbDB{DB: db}

	fmt.Println("🌱 Starting Demo Data Seeding...")

	now := time.Now()

	// 1. Company Profile
	settingsCol := mongoDB.DB.Collection("settings")
	if count, _ := settingsCol.CountDocuments(ctx, bson.M{"type": settings.SettingsTypeCompany}); count == 0 {
		profile := settings.Settings{
			ID:   primitive.NewObjectID(),
			Type: settings.SettingsTypeCompany,
			Company: &settings.CompanyProfile{
				Name:         "Acme Staffing Ltd.",
				Address:      "14 Harbor Street, Springfield",
				Phone:        "+1 555 0134",
				Email:        "office@acmestaffing.example",
				ReportFooter: "Confidential — for internal use only",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := settingsCol.InsertOne(ctx, profile); err != nil {
			log.Printf("Failed to create company profile: %v", err)
		} else {
			fmt.Println("Created Company Profile: Acme Staffing Ltd.")
		}
	} else {
		fmt.Println("Company profile already exists")
	}

	// 2. Report Templates (built-in defaults plus one custom example)
	templateRepo := template.NewMongoTemplateRepository(mongoDB, zap.NewNop())
	existingTemplates, err := templateRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list templates: %v", err)
	}
	covered := map[common_models.ReportType]bool{}
	for _, tpl := range existingTemplates {
		covered[tpl.Type] = true
	}
	for _, t := range common_models.AllReportTypes() {
		if covered[t] {
			fmt.Printf("Template for %s already exists\n", t)
			continue
		}
		def := template.DefaultTemplate(t)
		if err := templateRepo.Save(ctx, &def); err != nil {
			log.Printf("Failed to save default template %s: %v", t, err)
		} else {
			fmt.Printf("Created Template: %s\n", def.Name)
		}
	}

	custom := template.ReportTemplate{
		Name:        "Attendance by Employee",
		Description: "Attendance entries grouped per employee with daily hours.",
		Type:        common_models.ReportTypeAttendance,
		Config: template.ReportConfig{
			Columns: []template.ColumnConfig{
				{Key: "employee", Title: "Employee", Format: common_models.FormatText, Visible: true},
				{Key: "date", Title: "Date", Format: common_models.FormatDate, Visible: true},
				{Key: "status", Title: "Status", Format: common_models.FormatText, Visible: true},
				{Key: "hours", Title: "Hours", Format: common_models.FormatNumber, Visible: true, ComputeTotal: true},
			},
			Filters:          []string{"date_range", "month", "employee", "status"},
			ShowTotals:       true,
			GroupBy:          "employee",
			Orientation:      common_models.OrientationPortrait,
			PageSize:         common_models.PageSizeA4,
			IncludeDateRange: true,
		},
	}
	templateCol := mongoDB.DB.Collection("report_templates")
	if count, _ := templateCol.CountDocuments(ctx, bson.M{"name": custom.Name}); count == 0 {
		if err := templateRepo.Save(ctx, &custom); err != nil {
			log.Printf("Failed to save custom template: %v", err)
		} else {
			fmt.Printf("Created Template: %s\n", custom.Name)
		}
	} else {
		fmt.Printf("Template %s already exists\n", custom.Name)
	}

	// 3. Employees
	type employeeSeed struct {
		Name        string
		Email       string
		Designation string
		Department  string
		BaseSalary  float64
	}
	employees := []employeeSeed{
		{"Alice Johnson", "alice@acmestaffing.example", "Senior Engineer", "Engineering", 5200},
		{"Bob Smith", "bob@acmestaffing.example", "Engineer", "Engineering", 4100},
		{"Carol White", "carol@acmestaffing.example", "Account Executive", "Sales", 3800},
		{"David Chen", "david@acmestaffing.example", "Sales Manager", "Sales", 4600},
		{"Emma Davis", "emma@acmestaffing.example", "Operations Lead", "Operations", 4300},
		{"Frank Miller", "frank@acmestaffing.example", "Dispatcher", "Operations", 3200},
		{"Grace Lee", "grace@acmestaffing.example", "Accountant", "Finance", 3900},
		{"Henry Wilson", "henry@acmestaffing.example", "Engineer", "Engineering", 4000},
	}

	employeeCol := mongoDB.DB.Collection("employees")
	employeeIDs := make(map[string]primitive.ObjectID)

	for i, e := range employees {
		var existing bson.M
		err := employeeCol.FindOne(ctx, bson.M{"name": e.Name}).Decode(&existing)
		if err == nil {
			if id, ok := existing["_id"].(primitive.ObjectID); ok {
				employeeIDs[e.Name] = id
			}
			fmt.Printf("Employee %s already exists\n", e.Name)
			continue
		}

		id := primitive.NewObjectID()
		doc := bson.M{
			"_id":         id,
			"name":        e.Name,
			"email":       e.Email,
			"designation": e.Designation,
			"department":  e.Department,
			"join_date":   now.AddDate(-1, -i, 0),
			"base_salary": e.BaseSalary,
			"status":      "active",
			"created_at":  now,
			"updated_at":  now,
		}
		if _, err := employeeCol.InsertOne(ctx, doc); err != nil {
			log.Printf("Failed to create employee %s: %v", e.Name, err)
			continue
		}
		employeeIDs[e.Name] = id
		fmt.Printf("Created Employee: %s\n", e.Name)
	}

	// 4. Projects
	type projectSeed struct {
		Name   string
		Client string
		Budget float64
		Status string
	}
	projects := []projectSeed{
		{"Warehouse Expansion", "Northwind Logistics", 120000, "active"},
		{"Retail Rollout", "Fabrikam Stores", 85000, "active"},
		{"Office Refit", "Internal", 30000, "completed"},
	}

	projectCol := mongoDB.DB.Collection("projects")
	projectIDs := make(map[string]primitive.ObjectID)

	for i, p := range projects {
		var existing bson.M
		err := projectCol.FindOne(ctx, bson.M{"name": p.Name}).Decode(&existing)
		if err == nil {
			if id, ok := existing["_id"].(primitive.ObjectID); ok {
				projectIDs[p.Name] = id
			}
			fmt.Printf("Project %s already exists\n", p.Name)
			continue
		}

		id := primitive.NewObjectID()
		doc := bson.M{
			"_id":        id,
			"name":       p.Name,
			"client":     p.Client,
			"start_date": now.AddDate(0, -(i + 2), 0),
			"end_date":   now.AddDate(0, 6-i, 0),
			"budget":     p.Budget,
			"status":     p.Status,
			"created_at": now,
			"updated_at": now,
		}
		if _, err := projectCol.InsertOne(ctx, doc); err != nil {
			log.Printf("Failed to create project %s: %v", p.Name, err)
			continue
		}
		projectIDs[p.Name] = id
		fmt.Printf("Created Project: %s\n", p.Name)
	}

	projectNames := make([]string, 0, len(projects))
	for _, p := range projects {
		projectNames = append(projectNames, p.Name)
	}

	// 5. Attendance (last 10 weekdays per employee)
	attendanceCol := mongoDB.DB.Collection("attendance_records")
	attendanceCount := 0

	day := now
	weekdays := make([]time.Time, 0, 10)
	for len(weekdays) < 10 {
		day = day.AddDate(0, 0, -1)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		weekdays = append(weekdays, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	}

	for _, e := range employees {
		for di, d := range weekdays {
			status := "present"
			hours := 7.0 + rand.Float64()*2
			// One leave day per employee, staggered so totals differ
			if di == rand.Intn(len(weekdays)) {
				status = "leave"
				hours = 0
			}
			doc := bson.M{
				"employee_id": employeeIDs[e.Name],
				"employee":    e.Name,
				"project":     projectNames[di%len(projectNames)],
				"date":        d,
				"status":      status,
				"hours":       float64(int(hours*100)) / 100,
				"created_at":  now,
			}
			if insertIfMissing(ctx, attendanceCol, bson.M{"employee": e.Name, "date": d}, doc) {
				attendanceCount++
			}
		}
	}
	fmt.Printf("Created %d attendance records\n", attendanceCount)

	// 6. Payroll (previous two months)
	payrollCol := mongoDB.DB.Collection("payroll_records")
	payrollCount := 0

	for back := 1; back <= 2; back++ {
		month := now.AddDate(0, -back, 0)
		period := month.Format("2006-01")
		display := month.Format("January 2006")

		for _, e := range employees {
			allowances := e.BaseSalary * 0.12
			deductions := e.BaseSalary * 0.08
			doc := bson.M{
				"employee_id":    employeeIDs[e.Name],
				"employee":       e.Name,
				"period":         period,
				"month":          display,
				"basic_salary":   e.BaseSalary,
				"allowances":     float64(int(allowances*100)) / 100,
				"deductions":     float64(int(deductions*100)) / 100,
				"net_salary":     float64(int((e.BaseSalary+allowances-deductions)*100)) / 100,
				"attendance_pct": 90 + rand.Float64()*10,
				"status":         "paid",
				"created_at":     now,
			}
			if insertIfMissing(ctx, payrollCol, bson.M{"employee": e.Name, "period": period}, doc) {
				payrollCount++
			}
		}
	}
	fmt.Printf("Created %d payroll records\n", payrollCount)

	// 7. Expenditures & Incomes
	expenditureCol := mongoDB.DB.Collection("expenditures")
	type expenditureSeed struct {
		DaysAgo     int
		Category    string
		Description string
		Amount      float64
		Project     string
	}
	expenditures := []expenditureSeed{
		{3, "equipment", "Forklift rental", 1850, "Warehouse Expansion"},
		{5, "travel", "Site visit, fuel and tolls", 240.50, "Warehouse Expansion"},
		{8, "supplies", "Shelving units", 3200, "Warehouse Expansion"},
		{10, "travel", "Client visit flights", 980, "Retail Rollout"},
		{12, "supplies", "Point of sale terminals", 5400, "Retail Rollout"},
		{15, "services", "Electrical contractor", 2600, "Office Refit"},
	}
	expenditureCount := 0
	for _, x := range expenditures {
		d := now.AddDate(0, 0, -x.DaysAgo)
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		doc := bson.M{
			"date":        d,
			"category":    x.Category,
			"description": x.Description,
			"amount":      x.Amount,
			"project":     x.Project,
			"project_id":  projectIDs[x.Project],
			"created_at":  now,
		}
		if insertIfMissing(ctx, expenditureCol, bson.M{"description": x.Description}, doc) {
			expenditureCount++
		}
	}
	fmt.Printf("Created %d expenditures\n", expenditureCount)

	incomeCol := mongoDB.DB.Collection("incomes")
	type incomeSeed struct {
		DaysAgo     int
		Source      string
		Category    string
		Description string
		Amount      float64
		Project     string
	}
	incomes := []incomeSeed{
		{2, "Northwind Logistics", "contract", "Milestone 2 payment", 24000, "Warehouse Expansion"},
		{9, "Fabrikam Stores", "contract", "Kickoff invoice", 17000, "Retail Rollout"},
		{14, "Northwind Logistics", "contract", "Milestone 1 payment", 24000, "Warehouse Expansion"},
		{20, "Misc", "other", "Equipment resale", 1200, ""},
	}
	incomeCount := 0
	for _, in := range incomes {
		d := now.AddDate(0, 0, -in.DaysAgo)
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		doc := bson.M{
			"date":        d,
			"source":      in.Source,
			"category":    in.Category,
			"description": in.Description,
			"amount":      in.Amount,
			"created_at":  now,
		}
		if in.Project != "" {
			doc["project"] = in.Project
			doc["project_id"] = projectIDs[in.Project]
		}
		if insertIfMissing(ctx, incomeCol, bson.M{"description": in.Description}, doc) {
			incomeCount++
		}
	}
	fmt.Printf("Created %d incomes\n", incomeCount)

	// 8. One demo schedule: nightly payroll snapshot against the default
	// payroll template
	scheduleCol := mongoDB.DB.Collection("scheduled_reports")
	if count, _ := scheduleCol.CountDocuments(ctx, bson.M{"name": "Nightly payroll snapshot"}); count == 0 {
		var payrollTpl template.ReportTemplate
		err := templateCol.FindOne(ctx, bson.M{"type": common_models.ReportTypePayroll, "is_default": true}).Decode(&payrollTpl)
		if err != nil {
			log.Printf("No default payroll template, skipping schedule seed: %v", err)
		} else {
			spec, _ := cron.ParseStandard("0 6 * * *")
			next := spec.Next(now)
			doc := bson.M{
				"name":          "Nightly payroll snapshot",
				"template_id":   payrollTpl.ID.Hex(),
				"output_format": "xlsx",
				"schedule":      "0 6 * * *",
				"filters":       bson.M{"month": now.AddDate(0, -1, 0).Format("2006-01")},
				"active":        true,
				"next_run":      next,
				"created_at":    now,
				"updated_at":    now,
			}
			if _, err := scheduleCol.InsertOne(ctx, doc); err != nil {
				log.Printf("Failed to create demo schedule: %v", err)
			} else {
				fmt.Println("Created Schedule: Nightly payroll snapshot")
			}
		}
	} else {
		fmt.Println("Schedule Nightly payroll snapshot already exists")
	}

	// 9. Dev token for poking the API
	utils.SetSecret(cfg.JWTSecret)
	token, err := utils.GenerateToken("dev-admin-id", []string{"admin"})
	if err != nil {
		log.Printf("Failed to generate dev token: %v", err)
	} else {
		fmt.Printf("\nDev JWT (admin):\n%s\n", token)
	}

	fmt.Println("\n✅ Demo data seeding complete!")
}
