package cmsservice

const postFields = `
	author {
		bio
		name
		id
		photo {
			url
		}
	}
	createdAt
	slug
	title
	excerpt
	featuredImage {
		url
	}
	categories {
		name
		slug
	}`

const postSummaryFields = `
	title
	featuredImage {
		url
	}
	createdAt
	slug`

const getPostsQuery = `
	query GetPosts {
		postsConnection {
			edges {
				cursor
				node {` + postFields + `
				}
			}
		}
	}`

const getPostDetailsQuery = `
	query GetPostDetails($slug: String!) {
		post(where: { slug: $slug }) {` + postFields + `
			content {
				markdown
			}
		}
	}`

// last: 3 over ascending createdAt yields the three newest posts.
const getRecentPostsQuery = `
	query GetRecentPosts {
		posts(orderBy: createdAt_ASC, last: 3) {` + postSummaryFields + `
		}
	}`

const getSimilarPostsQuery = `
	query GetSimilarPosts($slug: String!, $categories: [String!]) {
		posts(
			where: { slug_not: $slug, AND: { categories_some: { slug_in: $categories } } }
			last: 3
		) {` + postSummaryFields + `
		}
	}`

const getCategoriesQuery = `
	query GetCategories {
		categories {
			name
			slug
		}
	}`

const getCommentsQuery = `
	query GetComments($slug: String!) {
		comments(where: { post: { slug: $slug } }) {
			name
			createdAt
			comment
		}
	}`

const getFeaturedPostsQuery = `
	query GetFeaturedPosts {
		posts(where: { featuredPost: true }) {
			author {
				name
				photo {
					url
				}
			}
			featuredImage {
				url
			}
			title
			slug
			createdAt
		}
	}`

const getAdjacentPostsQuery = `
	query GetAdjacentPosts($createdAt: DateTime!, $slug: String!) {
		next: posts(
			first: 1
			orderBy: createdAt_ASC
			where: { slug_not: $slug, AND: { createdAt_gte: $createdAt } }
		) {` + postSummaryFields + `
		}
		previous: posts(
			first: 1
			orderBy: createdAt_DESC
			where: { slug_not: $slug, AND: { createdAt_lte: $createdAt } }
		) {` + postSummaryFields + `
		}
	}`

const getCategoryPostsQuery = `
	query GetCategoryPosts($slug: String!) {
		postsConnection(where: { categories_some: { slug: $slug } }) {
			edges {
				cursor
				node {` + postFields + `
				}
			}
		}
	}`
