package driver

// IndexQueries are run once per connection by BuildIndices.
var IndexQueries = []string{
	"CREATE INDEX ON :Candidate(name);",
	"CREATE INDEX ON :Candidate(run_id);",
	"CREATE INDEX ON :Account(name);",
	"CREATE INDEX ON :Account(run_id);",
	"CREATE INDEX ON :Community(run_id);",
}

const (
	SaveCandidateQuery = `
		MERGE (n:Candidate {name: $name, run_id: $run_id})
		SET n.cohort = $cohort,
			n.friend_count = $friend_count,
			n.created_at = $created_at
		RETURN n.name AS name
	`

	SaveAccountQuery = `
		MERGE (n:Account {name: $name, run_id: $run_id})
		SET n.followed_by = $followed_by,
			n.created_at = $created_at
		RETURN n.name AS name
	`

	SaveFollowsQuery = `
		MATCH (source:Candidate {name: $source, run_id: $run_id})
		MATCH (target {name: $target, run_id: $run_id})
		WHERE target:Candidate OR target:Account
		MERGE (source)-[e:FOLLOWS]->(target)
		RETURN source.name AS source, target.name AS target
	`

	SaveCommunityQuery = `
		MERGE (c:Community {run_id: $run_id, index: $index})
		SET c.size = $size
		WITH c
		UNWIND $members AS member
		MATCH (n {name: member, run_id: $run_id})
		WHERE n:Candidate OR n:Account
		MERGE (n)-[:IN_COMMUNITY]->(c)
		RETURN count(n) AS members
	`

	GetRunEdgesQuery = `
		MATCH (source:Candidate {run_id: $run_id})-[:FOLLOWS]->(target)
		RETURN source.name AS source, target.name AS target
		ORDER BY source, target
	`

	DeleteRunQuery = `
		MATCH (n {run_id: $run_id})
		DETACH DELETE n
	`
)
