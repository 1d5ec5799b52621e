package domain

const (
	// TOKEN_DECIMALS is the number of fraction digits of every airdropped token amount
	TOKEN_DECIMALS = 18

	// Contract event names
	EVENT_REWARDS_ADDED = "RewardsAdded"
	EVENT_CLAIMED       = "Claimed"

	// Decoded event parameter names
	PARAM_CAMPAIGN_NAME_HASH = "campaignNameHash"
	PARAM_TOKEN              = "token"
	PARAM_START_DATE         = "startDate"
	PARAM_DEADLINE           = "deadline"
	PARAM_USER               = "user"
	PARAM_TOTAL_REWARD       = "totalReward"
	PARAM_FEE                = "fee"
)
