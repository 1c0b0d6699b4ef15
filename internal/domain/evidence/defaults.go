package evidence

import (
	"context"

	"github.com/casefort/LitIntel/internal/domain/litigation"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// DefaultProvider serves the compiled-in checklists.  It never fails; an
// unrecognised practice area receives the generic litigation checklist.
type DefaultProvider struct{}

// Checklist implements ChecklistProvider.
func (DefaultProvider) Checklist(_ context.Context, area litigation.PracticeArea) ([]Requirement, error) {
	switch area {
	case litigation.PracticeClinicalNegligence:
		return clinicalNegligenceChecklist(), nil
	case litigation.PracticeHousingDisrepair:
		return housingDisrepairChecklist(), nil
	case litigation.PracticePersonalInjury:
		return personalInjuryChecklist(), nil
	case litigation.PracticeCriminal:
		return criminalChecklist(), nil
	default:
		return genericChecklist(), nil
	}
}

func req(label string, cat Category, prio common.Severity, admin bool, patterns ...string) Requirement {
	return Requirement{
		ID:             common.NewID(),
		Label:          label,
		Category:       cat,
		Priority:       prio,
		Patterns:       patterns,
		Administrative: admin,
	}
}

func clinicalNegligenceChecklist() []Requirement {
	return []Requirement{
		req("Medical records", CategoryLiability, common.SeverityCritical, false,
			"medical record", "gp record", "hospital record", "clinical note"),
		req("Breach of duty expert report", CategoryLiability, common.SeverityCritical, false,
			"breach of duty report", "liability expert", "expert report on breach"),
		req("Causation expert report", CategoryCausation, common.SeverityCritical, false,
			"causation report", "causation expert", "condition and prognosis"),
		req("Chronology of treatment", CategoryCausation, common.SeverityHigh, false,
			"chronology", "treatment timeline"),
		req("Schedule of loss", CategoryQuantum, common.SeverityHigh, false,
			"schedule of loss", "special damages"),
		req("Letter of claim", CategoryProcedure, common.SeverityHigh, false,
			"letter of claim", "letter before action"),
		req("Client identification", CategoryProcedure, common.SeverityMedium, true,
			"client id", "proof of identity", "passport", "driving licence"),
		req("Signed retainer", CategoryProcedure, common.SeverityMedium, true,
			"retainer", "client care letter"),
		req("CFA agreement", CategoryProcedure, common.SeverityMedium, true,
			"cfa", "conditional fee"),
	}
}

func housingDisrepairChecklist() []Requirement {
	return []Requirement{
		req("Tenancy agreement", CategoryLiability, common.SeverityCritical, false,
			"tenancy agreement", "tenancy contract"),
		req("Disrepair report", CategoryLiability, common.SeverityCritical, false,
			"surveyor report", "disrepair report", "hazard assessment", "hhsrs"),
		req("Repair request records", CategoryLiability, common.SeverityHigh, false,
			"repair request", "complaint to landlord", "reported disrepair"),
		req("Photographic evidence", CategoryCausation, common.SeverityHigh, false,
			"photograph", "photo of", "images of damp"),
		req("Medical evidence of harm", CategoryCausation, common.SeverityMedium, false,
			"medical evidence", "gp letter", "respiratory"),
		req("Schedule of disrepair", CategoryQuantum, common.SeverityMedium, false,
			"schedule of disrepair", "scott schedule"),
		req("Pre-action protocol letter", CategoryProcedure, common.SeverityHigh, false,
			"pre-action", "pre action protocol", "letter of claim"),
		req("Client identification", CategoryProcedure, common.SeverityMedium, true,
			"client id", "proof of identity"),
		req("Signed retainer", CategoryProcedure, common.SeverityMedium, true,
			"retainer", "client care letter"),
	}
}

func personalInjuryChecklist() []Requirement {
	return []Requirement{
		req("Medical report", CategoryLiability, common.SeverityCritical, false,
			"medical report", "medco report", "medical expert"),
		req("Accident circumstances statement", CategoryLiability, common.SeverityHigh, false,
			"accident report", "witness statement", "circumstances of the accident"),
		req("Causation evidence", CategoryCausation, common.SeverityHigh, false,
			"causation", "prognosis"),
		req("Schedule of loss", CategoryQuantum, common.SeverityHigh, false,
			"schedule of loss", "loss of earnings"),
		req("Letter of claim", CategoryProcedure, common.SeverityHigh, false,
			"letter of claim", "claim notification form", "cnf"),
		req("Client identification", CategoryProcedure, common.SeverityMedium, true,
			"client id", "proof of identity"),
		req("CFA agreement", CategoryProcedure, common.SeverityMedium, true,
			"cfa", "conditional fee"),
	}
}

func criminalChecklist() []Requirement {
	return []Requirement{
		req("Disclosure schedules", CategoryProcedure, common.SeverityCritical, false,
			"mg6", "disclosure schedule", "unused material"),
		req("Interview record", CategoryLiability, common.SeverityCritical, false,
			"interview record", "pace interview", "interview transcript"),
		req("Defence statement", CategoryProcedure, common.SeverityHigh, false,
			"defence statement", "defence case statement"),
		req("Witness statements", CategoryLiability, common.SeverityHigh, false,
			"witness statement", "section 9"),
	}
}

func genericChecklist() []Requirement {
	return []Requirement{
		req("Statements of case", CategoryLiability, common.SeverityCritical, false,
			"particulars of claim", "defence", "statement of case"),
		req("Key contractual documents", CategoryLiability, common.SeverityHigh, false,
			"contract", "agreement", "terms"),
		req("Disclosure list", CategoryProcedure, common.SeverityHigh, false,
			"disclosure list", "list of documents"),
		req("Chronology", CategoryProcedure, common.SeverityMedium, false,
			"chronology"),
		req("Client identification", CategoryProcedure, common.SeverityMedium, true,
			"client id", "proof of identity"),
	}
}
