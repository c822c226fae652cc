package checklist

// The templates only matter at seed time; once a checklist is materialized
// it never re-syncs with them.

type templateItem struct {
	ID    string
	Text  string
	Phase string
}

var sellerTemplate = []templateItem{
	{ID: "assess-value", Text: "Assess market value and agree on a listing price", Phase: "Pre-Listing Preparation"},
	{ID: "property-walkthrough", Text: "Walk the property and note condition issues", Phase: "Pre-Listing Preparation"},
	{ID: "recommend-repairs", Text: "Recommend pre-listing repairs and improvements", Phase: "Pre-Listing Preparation"},
	{ID: "complete-sellers-disclosure", Text: "Have the seller complete the seller's disclosure", Phase: "Pre-Listing Preparation"},
	{ID: "gather-hoa-docs", Text: "Gather HOA documents and fee schedule", Phase: "Pre-Listing Preparation"},
	{ID: "stage-home", Text: "Stage the home for showings", Phase: "Pre-Listing Preparation"},
	{ID: "schedule-photography", Text: "Schedule listing photography", Phase: "Pre-Listing Preparation"},

	{ID: "sign-listing-agreement", Text: "Sign the listing agreement", Phase: "Listing & Marketing"},
	{ID: "enter-mls", Text: "Enter the listing into the MLS", Phase: "Listing & Marketing"},
	{ID: "install-yard-sign", Text: "Install yard sign and lockbox", Phase: "Listing & Marketing"},
	{ID: "launch-marketing", Text: "Launch the marketing campaign", Phase: "Listing & Marketing"},
	{ID: "schedule-open-house", Text: "Schedule the first open house", Phase: "Listing & Marketing"},
	{ID: "review-showing-feedback", Text: "Review showing feedback with the seller", Phase: "Listing & Marketing"},

	{ID: "review-offers", Text: "Review offers with the seller", Phase: "Under Contract"},
	{ID: "negotiate-terms", Text: "Negotiate price and terms", Phase: "Under Contract"},
	{ID: "execute-contract", Text: "Execute the purchase contract", Phase: "Under Contract"},
	{ID: "collect-option-fee", Text: "Collect the option fee and earnest money receipts", Phase: "Under Contract"},
	{ID: "track-option-period", Text: "Track the option period deadline", Phase: "Under Contract"},
	{ID: "coordinate-inspection", Text: "Coordinate the buyer's inspection", Phase: "Under Contract"},
	{ID: "negotiate-repair-amendments", Text: "Negotiate repair amendments", Phase: "Under Contract"},

	{ID: "order-title-work", Text: "Confirm the title commitment is ordered", Phase: "Closing"},
	{ID: "schedule-closing", Text: "Schedule closing with the title company", Phase: "Closing"},
	{ID: "final-walkthrough", Text: "Accommodate the buyer's final walkthrough", Phase: "Closing"},
	{ID: "transfer-keys", Text: "Hand over keys, openers and warranties", Phase: "Closing"},
}

var buyerTemplate = []templateItem{
	{ID: "select-lender", Text: "Select a lender and compare loan estimates", Phase: "Pre-Approval"},
	{ID: "obtain-preapproval", Text: "Obtain a pre-approval letter", Phase: "Pre-Approval"},
	{ID: "set-budget", Text: "Set the purchase budget and monthly payment ceiling", Phase: "Pre-Approval"},
	{ID: "sign-buyer-rep", Text: "Sign the buyer representation agreement", Phase: "Pre-Approval"},

	{ID: "define-criteria", Text: "Define search criteria and target areas", Phase: "Home Search"},
	{ID: "tour-homes", Text: "Tour candidate homes", Phase: "Home Search"},
	{ID: "review-disclosures", Text: "Review seller disclosures for shortlisted homes", Phase: "Home Search"},
	{ID: "draft-offer", Text: "Draft the offer", Phase: "Home Search"},

	{ID: "negotiate-offer", Text: "Negotiate the offer to execution", Phase: "Under Contract"},
	{ID: "deposit-earnest-money", Text: "Deposit earnest money", Phase: "Under Contract"},
	{ID: "pay-option-fee", Text: "Pay the option fee", Phase: "Under Contract"},
	{ID: "schedule-inspection", Text: "Schedule the inspection inside the option period", Phase: "Under Contract"},
	{ID: "review-inspection", Text: "Review the inspection report and negotiate repairs", Phase: "Under Contract"},
	{ID: "order-appraisal", Text: "Confirm the appraisal is ordered", Phase: "Under Contract"},

	{ID: "finalize-loan", Text: "Finalize loan underwriting", Phase: "Closing"},
	{ID: "review-closing-disclosure", Text: "Review the closing disclosure", Phase: "Closing"},
	{ID: "final-walkthrough", Text: "Do the final walkthrough", Phase: "Closing"},
	{ID: "attend-closing", Text: "Attend closing and fund", Phase: "Closing"},
}

// templateFor returns the seed items for a role. Anything that is not
// sell-side gets the buyer template.
func templateFor(role Role) []Item {
	src := buyerTemplate
	if role == RoleSell {
		src = sellerTemplate
	}

	items := make([]Item, len(src))
	for i, t := range src {
		items[i] = Item{ID: t.ID, Text: t.Text, Phase: t.Phase}
	}

	return items
}
