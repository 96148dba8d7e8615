// Package graphql holds the SDL schema served by the graph API. The
// resolver package must stay in lockstep with this file.
package graphql

// GetGQLSchema returns the schema definition for the graph surface.
func GetGQLSchema() string {
	return schemaString
}

const schemaString = `
schema {
	query: Query
	mutation: Mutation
}

scalar Time

type Query {
	users: [User!]!
	user(id: ID!): User!
	tweets: [Tweet!]!
	tweet(id: ID!): Tweet!
	reply(id: ID!): Reply!
	descendants(replyId: ID!): [Reply!]!
	newsFeed(userId: ID!): [NewsFeedEntry!]!
	home(userId: ID!): [Tweet!]!
}

type Mutation {
	signUp(input: SignUpInput!): User!
	logIn(email: String!, password: String!): TokenBundle!

	follow(userId: ID!, targetId: ID!): User!
	unfollow(userId: ID!, targetId: ID!): User!

	createTweet(input: CreateTweetInput!): Tweet!
	deleteTweet(id: ID!): Boolean!
	retweet(userId: ID!, tweetId: ID!): Tweet!
	retweetReply(userId: ID!, replyId: ID!): Tweet!

	createReply(input: CreateReplyInput!): Reply!
	deleteReply(id: ID!): Boolean!

	like(userId: ID!, target: LikeTargetInput!): Like!
	unlike(userId: ID!, target: LikeTargetInput!): Boolean!
	vote(userId: ID!, choiceId: ID!): Vote!
	unvote(userId: ID!, choiceId: ID!): Boolean!

	markNewsFeedRead(id: ID!): NewsFeedEntry!
}

enum LikeTargetKind {
	TWEET
	REPLY
}

input LikeTargetInput {
	kind: LikeTargetKind!
	id: ID!
}

input SignUpInput {
	username: String!
	email: String!
	password: String!
	bio: String
	location: String
	website: String
	birthDate: Time
	picture: String
	backgroundPicture: String
}

input PollInput {
	question: String!
	choices: [String!]!
}

input CreateTweetInput {
	userId: ID!
	context: String!
	file: String
	peopleYouFollow: Boolean!
	poll: PollInput
}

input CreateReplyInput {
	tweetId: ID!
	parentId: ID
	userId: ID!
	context: String!
	file: String
}

type TokenBundle {
	accessToken: String!
	refreshToken: String!
	csrfToken: String!
}

type Profile {
	id: ID!
	bio: String!
	location: String!
	website: String!
	birthDate: Time!
}

type User {
	id: ID!
	username: String!
	email: String!
	isActive: Boolean!
	createdAt: Time!
	profile: Profile
	followers: [User!]!
	following: [User!]!
	followerCount: Int!
	followingCount: Int!
	tweets: [Tweet!]!
}

type Tweet {
	id: ID!
	context: String!
	createdAt: Time!
	file: String!
	restricted: Boolean!
	user: User!
	question: Question
	replies: [Reply!]!
	likeCount: Int!
}

type Question {
	id: ID!
	text: String!
	pubDate: Time!
	choices: [Choice!]!
}

type Choice {
	id: ID!
	text: String!
	voteCount: Int!
}

type Reply {
	id: ID!
	context: String!
	createdAt: Time!
	file: String!
	user: User!
	tweetId: ID!
	parentId: ID
	depth: Int!
	children: [Reply!]!
	descendants: [Reply!]!
	likeCount: Int!
}

type Like {
	id: ID!
	userId: ID!
	tweetId: ID
	replyId: ID
}

type Vote {
	id: ID!
	userId: ID!
	choiceId: ID!
}

type NewsFeedEntry {
	id: ID!
	description: String!
	createdAt: Time!
	isRead: Boolean!
	fromUser: User!
	toUser: User
}
`
