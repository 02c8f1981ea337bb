package constants

// Backend endpoints. Paths containing %s take a resource id.
const (
	EndpointLogin          = "/user/login"
	EndpointRegister       = "/user/register"
	EndpointMyAccount      = "/user/my-account"
	EndpointLogout         = "/user/logout"
	EndpointUpdateAccount  = "/user/update-account"
	EndpointChangePassword = "/user/change-password"

	EndpointCreateTask   = "/task/createTask"
	EndpointListTasks    = "/task/allTask"
	EndpointUpdateTask   = "/task/update/%s"
	EndpointCompleteTask = "/task/complete/%s"
	EndpointDeleteTask   = "/task/delete/%s"

	EndpointLogPrayers   = "/prayer/prayers"
	EndpointTodayPrayers = "/prayer/prayers/today"
	EndpointTogglePrayer = "/prayer/%s/complete"

	EndpointCreateChallenge   = "/challenge/create"
	EndpointListChallenges    = "/challenge/all"
	EndpointMyChallenges      = "/challenge/my-challenges"
	EndpointJoinChallenge     = "/challenge/%s/join"
	EndpointChallengeProgress = "/challenge/%s/progress"

	EndpointCreateGroup  = "/group/createGroup"
	EndpointListGroups   = "/group/allGroups"
	EndpointMyGroups     = "/group/my-groups"
	EndpointJoinGroup    = "/group/%s/join"
	EndpointLeaveGroup   = "/group/%s/leave"
	EndpointGroupDetails = "/group/%s/details"

	EndpointCreateGroupChallenge   = "/groupChallenge/group-challenges"
	EndpointJoinGroupChallenge     = "/groupChallenge/group-challenges/%s/join"
	EndpointGroupChallengeProgress = "/groupChallenge/group-challenges/%s/progress"
	EndpointLeaderboard            = "/groupChallenge/group-challenges/%s/leaderboard"
)
