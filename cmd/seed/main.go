package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"excelinterview/internal/model"
	"excelinterview/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "excelinterview"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	questionRepo := repository.NewQuestionRepo(client.Database(dbName))

	count, err := questionRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count questions: %v", err)
	}
	if count > 0 {
		fmt.Printf("Question catalog already seeded (%d questions), nothing to do\n", count)
		return
	}

	for _, q := range questionBank() {
		if err := questionRepo.Create(ctx, q); err != nil {
			log.Fatalf("Failed to insert question %d: %v", q.ID, err)
		}
	}

	fmt.Printf("Seeded %d questions into %s.questions\n", len(questionBank()), dbName)
	for _, difficulty := range []string{"beginner", "intermediate", "advanced"} {
		qs, err := questionRepo.GetByDifficulty(ctx, difficulty)
		if err != nil {
			log.Fatalf("Failed to list %s questions: %v", difficulty, err)
		}
		fmt.Printf("  %-12s %d\n", difficulty, len(qs))
	}
}

// questionBank is the static catalog, ordered by id within each
// difficulty. Serving order follows id order.
func questionBank() []*model.Question {
	return []*model.Question{
		// Beginner
		{
			ID:              1,
			Category:        "Basic Formulas",
			Difficulty:      "beginner",
			QuestionText:    "Write a formula that adds up the values in cells A1 through A10.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=SUM(A1:A10)",
			Alternatives:    []string{"=SUM(A1:A10)", "=A1+A2+A3+A4+A5+A6+A7+A8+A9+A10"},
			Explanation:     "SUM is the fundamental aggregation function for ranges.",
			Tags:            []string{"sum", "ranges"},
		},
		{
			ID:              2,
			Category:        "Basic Formulas",
			Difficulty:      "beginner",
			QuestionText:    "Write a formula that returns the average of the values in B2 through B20.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=AVERAGE(B2:B20)",
			Alternatives:    []string{"=AVERAGE(B2:B20)", "=SUM(B2:B20)/COUNT(B2:B20)"},
			Explanation:     "AVERAGE ignores empty cells, unlike a manual SUM/COUNT over a fixed divisor.",
			Tags:            []string{"average", "ranges"},
		},
		{
			ID:              3,
			Category:        "Basic Formulas",
			Difficulty:      "beginner",
			QuestionText:    "What does the = sign at the start of a cell entry tell Excel, and what happens without it?",
			Type:            model.QuestionTypeExplanation,
			CanonicalAnswer: "The = sign tells Excel to evaluate the entry as a formula. Without it the entry is stored as literal text or a number.",
			Explanation:     "Distinguishing formulas from literals is the first thing candidates must know.",
			Tags:            []string{"fundamentals"},
		},
		{
			ID:              4,
			Category:        "Conditional Logic",
			Difficulty:      "beginner",
			QuestionText:    "Write a formula for cell C1 that shows \"Pass\" if A1 is at least 50 and \"Fail\" otherwise.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=IF(A1>=50,\"Pass\",\"Fail\")",
			Alternatives:    []string{"=IF(A1>=50,\"Pass\",\"Fail\")", "=IF(A1<50,\"Fail\",\"Pass\")"},
			Explanation:     "IF is the entry point to conditional logic.",
			Tags:            []string{"if", "conditions"},
		},
		{
			ID:              5,
			Category:        "Text Functions",
			Difficulty:      "beginner",
			QuestionText:    "Write a formula that joins the first name in A2 and the last name in B2 with a space between them.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=A2&\" \"&B2",
			Alternatives:    []string{"=A2&\" \"&B2", "=CONCATENATE(A2,\" \",B2)", "=CONCAT(A2,\" \",B2)", "=TEXTJOIN(\" \",TRUE,A2,B2)"},
			Explanation:     "Concatenation comes up constantly when cleaning imported data.",
			Tags:            []string{"concatenation", "text"},
		},
		{
			ID:              6,
			Category:        "Date Functions",
			Difficulty:      "beginner",
			QuestionText:    "Which function returns the current date, updating automatically each day, and how would you use it in a cell?",
			Type:            model.QuestionTypeExplanation,
			CanonicalAnswer: "TODAY() returns the current date and recalculates on each workbook open. Enter =TODAY() in a cell.",
			Alternatives:    []string{"=TODAY()"},
			Explanation:     "Volatile date functions versus hardcoded dates is a common stumbling point.",
			Tags:            []string{"dates"},
		},
		{
			ID:              7,
			Category:        "Data Analysis",
			Difficulty:      "beginner",
			QuestionText:    "Write a formula that counts how many cells in D1 through D100 contain a number.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=COUNT(D1:D100)",
			Alternatives:    []string{"=COUNT(D1:D100)"},
			Explanation:     "COUNT versus COUNTA versus COUNTBLANK separates careful candidates from careless ones.",
			Tags:            []string{"count"},
		},

		// Intermediate
		{
			ID:              8,
			Category:        "Lookup Functions",
			Difficulty:      "intermediate",
			QuestionText:    "You have employee IDs in column A and salaries in column D of the range A2:D500. Write a formula that finds the salary for the employee ID stored in F1.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=VLOOKUP(F1,A2:D500,4,FALSE)",
			Alternatives:    []string{"=VLOOKUP(F1,A2:D500,4,FALSE)", "=VLOOKUP(F1,A2:D500,4,0)", "=XLOOKUP(F1,A2:A500,D2:D500)", "=INDEX(D2:D500,MATCH(F1,A2:A500,0))"},
			Explanation:     "Exact-match lookups are the single most common interview topic for analyst roles.",
			Tags:            []string{"vlookup", "xlookup", "index-match"},
		},
		{
			ID:              9,
			Category:        "Lookup Functions",
			Difficulty:      "intermediate",
			QuestionText:    "Explain the main limitations of VLOOKUP and how INDEX/MATCH or XLOOKUP address them.",
			Type:            model.QuestionTypeExplanation,
			CanonicalAnswer: "VLOOKUP can only look to the right of the lookup column, breaks when columns are inserted, and defaults to approximate match. INDEX/MATCH and XLOOKUP look in any direction, reference columns independently, and XLOOKUP defaults to exact match.",
			Explanation:     "Tests whether the candidate understands lookups rather than memorizing one formula.",
			Tags:            []string{"vlookup", "index-match", "xlookup"},
		},
		{
			ID:              10,
			Category:        "Conditional Logic",
			Difficulty:      "intermediate",
			QuestionText:    "Write a formula that sums the values in C2:C100 only for rows where the region in B2:B100 is \"West\".",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=SUMIF(B2:B100,\"West\",C2:C100)",
			Alternatives:    []string{"=SUMIF(B2:B100,\"West\",C2:C100)", "=SUMIFS(C2:C100,B2:B100,\"West\")", "=SUMPRODUCT((B2:B100=\"West\")*C2:C100)"},
			Explanation:     "Conditional aggregation is the bridge from basic formulas to real analysis work.",
			Tags:            []string{"sumif", "sumifs"},
		},
		{
			ID:              11,
			Category:        "Text Functions",
			Difficulty:      "intermediate",
			QuestionText:    "Cell A2 contains an email address. Write a formula that extracts everything before the @ sign.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=LEFT(A2,FIND(\"@\",A2)-1)",
			Alternatives:    []string{"=LEFT(A2,FIND(\"@\",A2)-1)", "=TEXTBEFORE(A2,\"@\")", "=LEFT(A2,SEARCH(\"@\",A2)-1)"},
			Explanation:     "Combining LEFT with FIND shows the candidate can compose functions.",
			Tags:            []string{"text", "find", "left"},
		},
		{
			ID:              12,
			Category:        "Pivot Tables",
			Difficulty:      "intermediate",
			QuestionText:    "You receive a raw sales export with columns for date, region, product and amount. Describe how you would use a pivot table to show total sales by region per month.",
			Type:            model.QuestionTypeScenario,
			CanonicalAnswer: "Insert a pivot table over the export, put region in rows, date in columns grouped by month, and amount in values as a sum.",
			Explanation:     "Pivot fluency separates spreadsheet users from spreadsheet analysts.",
			Tags:            []string{"pivot", "grouping"},
		},
		{
			ID:              13,
			Category:        "Data Validation",
			Difficulty:      "intermediate",
			QuestionText:    "How would you restrict a column so users can only enter one of the values Low, Medium or High?",
			Type:            model.QuestionTypeExplanation,
			CanonicalAnswer: "Select the column, open Data Validation, choose List, and supply Low,Medium,High as the source. Users then pick from a dropdown and other entries are rejected.",
			Explanation:     "Validation keeps shared workbooks from degrading into free text.",
			Tags:            []string{"validation", "dropdown"},
		},
		{
			ID:              14,
			Category:        "Data Analysis",
			Difficulty:      "intermediate",
			QuestionText:    "Write a formula that counts orders in A2:A500 where the amount in B2:B500 exceeds 1000 and the status in C2:C500 is \"Shipped\".",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=COUNTIFS(B2:B500,\">1000\",C2:C500,\"Shipped\")",
			Alternatives:    []string{"=COUNTIFS(B2:B500,\">1000\",C2:C500,\"Shipped\")", "=SUMPRODUCT((B2:B500>1000)*(C2:C500=\"Shipped\"))"},
			Explanation:     "Multi-criteria counting is everyday reporting work.",
			Tags:            []string{"countifs"},
		},
		{
			ID:              15,
			Category:        "Charts & Visualization",
			Difficulty:      "intermediate",
			QuestionText:    "A stakeholder wants to compare monthly revenue against a target line on one chart. Which chart setup would you use and why?",
			Type:            model.QuestionTypeScenario,
			CanonicalAnswer: "A combo chart: revenue as columns and the target as a line series, with a secondary axis only if the scales differ. This keeps actuals and the threshold readable in a single view.",
			Explanation:     "Chart choice questions reveal communication judgment, not just tool knowledge.",
			Tags:            []string{"charts", "combo"},
		},

		// Advanced
		{
			ID:              16,
			Category:        "Array Formulas",
			Difficulty:      "advanced",
			QuestionText:    "Write a single formula that returns the unique values from A2:A200 in spill order.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=UNIQUE(A2:A200)",
			Alternatives:    []string{"=UNIQUE(A2:A200)", "=SORT(UNIQUE(A2:A200))"},
			Explanation:     "Dynamic arrays replaced a generation of fragile Ctrl+Shift+Enter patterns.",
			Tags:            []string{"dynamic-arrays", "unique"},
		},
		{
			ID:              17,
			Category:        "Array Formulas",
			Difficulty:      "advanced",
			QuestionText:    "Using dynamic array functions, write a formula that lists the products from A2:A500 whose sales in B2:B500 are above the overall average.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=FILTER(A2:A500,B2:B500>AVERAGE(B2:B500))",
			Alternatives:    []string{"=FILTER(A2:A500,B2:B500>AVERAGE(B2:B500))"},
			Explanation:     "FILTER with a computed threshold tests composition of the dynamic array toolkit.",
			Tags:            []string{"filter", "dynamic-arrays"},
		},
		{
			ID:              18,
			Category:        "Power Query",
			Difficulty:      "advanced",
			QuestionText:    "You receive the same dozen CSV exports every week and currently clean them by hand. Walk through how you would automate this with Power Query.",
			Type:            model.QuestionTypeScenario,
			CanonicalAnswer: "Point Power Query at the folder, combine the files, apply the cleaning steps once (types, filters, renames, unpivots) so they are recorded in the query, load to the model or a table, and refresh each week instead of re-cleaning.",
			Explanation:     "Repeatable transformation pipelines are the core Power Query value proposition.",
			Tags:            []string{"power-query", "automation"},
		},
		{
			ID:              19,
			Category:        "Financial Functions",
			Difficulty:      "advanced",
			QuestionText:    "Write a formula for the monthly payment on a 250000 loan at 6% annual interest over 30 years.",
			Type:            model.QuestionTypeFormula,
			CanonicalAnswer: "=PMT(6%/12,30*12,-250000)",
			Alternatives:    []string{"=PMT(6%/12,30*12,-250000)", "=PMT(0.06/12,360,-250000)", "=-PMT(6%/12,30*12,250000)"},
			Explanation:     "PMT argument order and the sign convention trip up candidates who only memorized the name.",
			Tags:            []string{"pmt", "finance"},
		},
		{
			ID:              20,
			Category:        "Statistical Functions",
			Difficulty:      "advanced",
			QuestionText:    "Explain the difference between STDEV.P and STDEV.S and when each is appropriate.",
			Type:            model.QuestionTypeExplanation,
			CanonicalAnswer: "STDEV.P computes population standard deviation, dividing by n, for when the data is the entire population. STDEV.S computes sample standard deviation, dividing by n-1, for when the data is a sample estimating a larger population.",
			Explanation:     "A quick check on statistical literacy behind the function names.",
			Tags:            []string{"statistics"},
		},
		{
			ID:              21,
			Category:        "VBA Basics",
			Difficulty:      "advanced",
			QuestionText:    "A workbook needs a button that copies this week's summary sheet, renames it with the current date, and clears the input cells. Outline the VBA approach.",
			Type:            model.QuestionTypeScenario,
			CanonicalAnswer: "Record or write a Sub that calls Worksheets(\"Summary\").Copy, renames ActiveSheet.Name using Format(Date, \"yyyy-mm-dd\"), clears the input ranges with Range(...).ClearContents, and assign the macro to a form control button.",
			Explanation:     "Tests whether the candidate can structure a small automation, not write perfect syntax.",
			Tags:            []string{"vba", "automation"},
		},
	}
}
