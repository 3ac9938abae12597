package dataset

// Sheet names as they appear in the TMS export. Any subset may be absent;
// an absent sheet silently omits its derived data.
const (
	SheetRawData   = "AMS RAW DATA"
	SheetOTP       = "OTP POD"
	SheetVolume    = "Volume per SVC"
	SheetLanes     = "Lane usage " // trailing space is in the export itself
	SheetCostSales = "cost sales"
)

// Column identity in the export is positional: the Nth raw column always
// carries the Nth name below, whatever header text the revision shipped with.

// otpSchema covers the OTP sheet revisions: the early 5-column layout and
// the later one that added the QC reason in column F.
var otpSchema = Schema{Versions: [][]string{
	{"TMS_Order", "QDT", "POD_DateTime", "Time_Diff", "Status"},
	{"TMS_Order", "QDT", "POD_DateTime", "Time_Diff", "Status", "QC_Name"},
}}

// costSalesSchema is the full 18-name reference list; short revisions get a
// prefix of it rather than an error.
var costSalesSchema = Schema{Versions: [][]string{{
	"Order_Date", "Account", "Account_Name", "Office", "Order_Num",
	"PU_Cost", "Ship_Cost", "Man_Cost", "Del_Cost", "Total_Cost",
	"Net_Revenue", "Currency", "Diff", "Gross_Percent", "Invoice_Num",
	"Total_Amount", "Status", "PU_Country",
}}}
