package models

// MatchProposal is a directed interest signal from one user to another.
// The sender's display data is denormalized into the record at write time;
// the recipient's data is looked up live when the proposal is acted on.
type MatchProposal struct {
	ProposalID    string `dynamodbav:"proposalId" json:"proposalId"`
	FromUserEmail string `dynamodbav:"fromUserEmail" json:"fromUserEmail"`
	FromUserName  string `dynamodbav:"fromUserName,omitempty" json:"fromUserName"`
	FromUserPhoto string `dynamodbav:"fromUserPhoto,omitempty" json:"fromUserPhoto"`
	ToUserEmail   string `dynamodbav:"toUserEmail" json:"toUserEmail"`
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
	Rejected      bool   `dynamodbav:"rejected" json:"rejected"`
	RejectedAt    string `dynamodbav:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
}

// AcceptedMatch records a mutual acceptance. Immutable once written.
type AcceptedMatch struct {
	MatchID          string `dynamodbav:"matchId" json:"matchId"`
	User1Email       string `dynamodbav:"user1Email" json:"user1Email"`
	User1Name        string `dynamodbav:"user1Name,omitempty" json:"user1Name"`
	User1Photo       string `dynamodbav:"user1Photo,omitempty" json:"user1Photo"`
	User2Email       string `dynamodbav:"user2Email" json:"user2Email"`
	User2Name        string `dynamodbav:"user2Name,omitempty" json:"user2Name"`
	User2Photo       string `dynamodbav:"user2Photo,omitempty" json:"user2Photo"`
	AcceptedAt       string `dynamodbav:"acceptedAt" json:"acceptedAt"`
	MutualAcceptance bool   `dynamodbav:"mutualAcceptance" json:"mutualAcceptance"`
}

// MatchProposalsTable is the DynamoDB table name for match proposals
const MatchProposalsTable = "MatchProposals"

// MatchProposalsByRecipientIndex is the GSI keyed by the proposal recipient
const MatchProposalsByRecipientIndex = "toUserEmail-index"

// AcceptedMatchesTable is the DynamoDB table name for accepted matches
const AcceptedMatchesTable = "AcceptedMatches"
